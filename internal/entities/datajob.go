package entities

import (
	"html/template"
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// DataJob is the descriptor for data job (task) entities.
type DataJob struct {
	tmpl *template.Template
}

var _ registry.Descriptor = (*DataJob)(nil)

func NewDataJob(tmpl *template.Template) *DataJob {
	return &DataJob{tmpl: tmpl}
}

func (j *DataJob) Type() catalog.EntityType { return catalog.TypeDataJob }
func (j *DataJob) CollectionName() string   { return "dataJobs" }
func (j *DataJob) PathName() string         { return "tasks" }
func (j *DataJob) Icon() string             { return "console" }

func (j *DataJob) Capabilities() catalog.CapabilitySet {
	return catalog.NewCapabilitySet(catalog.CapabilitySearch, catalog.CapabilityBrowse, catalog.CapabilityLineage)
}

func (j *DataJob) DisplayName(e *catalog.Entity) string {
	return displayName(e)
}

func (j *DataJob) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return catalog.GenericProperties(e)
}

func (j *DataJob) params(e *catalog.Entity) params {
	return params{Label: "Task", Icon: j.Icon(), Entity: e}
}

func (j *DataJob) RenderProfile(w io.Writer, e *catalog.Entity) error {
	return j.tmpl.ExecuteTemplate(w, "entity_profile.html", j.params(e))
}

func (j *DataJob) RenderPreview(w io.Writer, e *catalog.Entity) error {
	return j.tmpl.ExecuteTemplate(w, "entity_preview.html", j.params(e))
}

func (j *DataJob) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	return j.tmpl.ExecuteTemplate(w, "search_result.html", j.params(e))
}

func (j *DataJob) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	return j.tmpl.ExecuteTemplate(w, "browse_rows.html", params{Label: "Tasks", Icon: j.Icon(), Entities: entities})
}
