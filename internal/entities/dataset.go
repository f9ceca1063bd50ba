package entities

import (
	"html/template"
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// Dataset is the descriptor for dataset entities. Datasets carry the richest
// payload of all types (schema, field-level lineage, siblings) and support
// all three well-known capabilities.
type Dataset struct {
	tmpl *template.Template
}

var _ registry.Descriptor = (*Dataset)(nil)
var _ registry.LineageViewer = (*Dataset)(nil)
var _ registry.EmbeddedProfileRenderer = (*Dataset)(nil)

func NewDataset(tmpl *template.Template) *Dataset {
	return &Dataset{tmpl: tmpl}
}

func (d *Dataset) Type() catalog.EntityType { return catalog.TypeDataset }
func (d *Dataset) CollectionName() string   { return "datasets" }
func (d *Dataset) PathName() string         { return "dataset" }
func (d *Dataset) Icon() string             { return "database" }

func (d *Dataset) Capabilities() catalog.CapabilitySet {
	return catalog.NewCapabilitySet(catalog.CapabilitySearch, catalog.CapabilityBrowse, catalog.CapabilityLineage)
}

func (d *Dataset) DisplayName(e *catalog.Entity) string {
	return displayName(e)
}

func (d *Dataset) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return catalog.GenericProperties(e)
}

func (d *Dataset) params(e *catalog.Entity) params {
	return params{Label: "Dataset", Icon: d.Icon(), Entity: e}
}

func (d *Dataset) RenderProfile(w io.Writer, e *catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "dataset_profile.html", d.params(e))
}

func (d *Dataset) RenderPreview(w io.Writer, e *catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "entity_preview.html", d.params(e))
}

func (d *Dataset) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "search_result.html", d.params(e))
}

func (d *Dataset) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "browse_rows.html", params{Label: "Datasets", Icon: d.Icon(), Entities: entities})
}

func (d *Dataset) RenderEmbeddedProfile(w io.Writer, e *catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "embedded_profile.html", d.params(e))
}

// LineageView qualifies the node name with the dataset's platform so lineage
// graphs spanning multiple platforms stay readable. Everything else comes
// from the generic projection.
func (d *Dataset) LineageView(e *catalog.Entity) *catalog.LineageConfig {
	name := displayName(e)
	if e.Platform != "" {
		name = e.Platform + "/" + name
	}
	return &catalog.LineageConfig{Name: name}
}
