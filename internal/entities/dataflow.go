package entities

import (
	"html/template"
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// DataFlow is the descriptor for data flow (pipeline) entities.
type DataFlow struct {
	tmpl *template.Template
}

var _ registry.Descriptor = (*DataFlow)(nil)

func NewDataFlow(tmpl *template.Template) *DataFlow {
	return &DataFlow{tmpl: tmpl}
}

func (f *DataFlow) Type() catalog.EntityType { return catalog.TypeDataFlow }
func (f *DataFlow) CollectionName() string   { return "dataFlows" }
func (f *DataFlow) PathName() string         { return "pipelines" }
func (f *DataFlow) Icon() string             { return "share-alt" }

func (f *DataFlow) Capabilities() catalog.CapabilitySet {
	return catalog.NewCapabilitySet(catalog.CapabilitySearch, catalog.CapabilityBrowse, catalog.CapabilityLineage)
}

func (f *DataFlow) DisplayName(e *catalog.Entity) string {
	return displayName(e)
}

func (f *DataFlow) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return catalog.GenericProperties(e)
}

func (f *DataFlow) params(e *catalog.Entity) params {
	return params{Label: "Pipeline", Icon: f.Icon(), Entity: e}
}

func (f *DataFlow) RenderProfile(w io.Writer, e *catalog.Entity) error {
	return f.tmpl.ExecuteTemplate(w, "entity_profile.html", f.params(e))
}

func (f *DataFlow) RenderPreview(w io.Writer, e *catalog.Entity) error {
	return f.tmpl.ExecuteTemplate(w, "entity_preview.html", f.params(e))
}

func (f *DataFlow) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	return f.tmpl.ExecuteTemplate(w, "search_result.html", f.params(e))
}

func (f *DataFlow) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	return f.tmpl.ExecuteTemplate(w, "browse_rows.html", params{Label: "Pipelines", Icon: f.Icon(), Entities: entities})
}
