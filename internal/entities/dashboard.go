package entities

import (
	"html/template"
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// Dashboard is the descriptor for dashboard entities.
type Dashboard struct {
	tmpl *template.Template
}

var _ registry.Descriptor = (*Dashboard)(nil)
var _ registry.EmbeddedProfileRenderer = (*Dashboard)(nil)

func NewDashboard(tmpl *template.Template) *Dashboard {
	return &Dashboard{tmpl: tmpl}
}

func (d *Dashboard) Type() catalog.EntityType { return catalog.TypeDashboard }
func (d *Dashboard) CollectionName() string   { return "dashboards" }
func (d *Dashboard) PathName() string         { return "dashboard" }
func (d *Dashboard) Icon() string             { return "dashboard" }

func (d *Dashboard) Capabilities() catalog.CapabilitySet {
	return catalog.NewCapabilitySet(catalog.CapabilitySearch, catalog.CapabilityBrowse, catalog.CapabilityLineage)
}

func (d *Dashboard) DisplayName(e *catalog.Entity) string {
	return displayName(e)
}

func (d *Dashboard) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return catalog.GenericProperties(e)
}

func (d *Dashboard) params(e *catalog.Entity) params {
	return params{Label: "Dashboard", Icon: d.Icon(), Entity: e}
}

func (d *Dashboard) RenderProfile(w io.Writer, e *catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "entity_profile.html", d.params(e))
}

func (d *Dashboard) RenderPreview(w io.Writer, e *catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "entity_preview.html", d.params(e))
}

func (d *Dashboard) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "search_result.html", d.params(e))
}

func (d *Dashboard) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "browse_rows.html", params{Label: "Dashboards", Icon: d.Icon(), Entities: entities})
}

// RenderEmbeddedProfile renders the compact variant used when a dashboard is
// shown inside another entity's page (e.g. as a lineage neighbor).
func (d *Dashboard) RenderEmbeddedProfile(w io.Writer, e *catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "embedded_profile.html", d.params(e))
}
