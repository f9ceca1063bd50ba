package entities

import (
	"html/template"
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// Chart is the descriptor for chart entities.
type Chart struct {
	tmpl *template.Template
}

var _ registry.Descriptor = (*Chart)(nil)
var _ registry.LineageViewer = (*Chart)(nil)

func NewChart(tmpl *template.Template) *Chart {
	return &Chart{tmpl: tmpl}
}

func (c *Chart) Type() catalog.EntityType { return catalog.TypeChart }
func (c *Chart) CollectionName() string   { return "charts" }
func (c *Chart) PathName() string         { return "chart" }
func (c *Chart) Icon() string             { return "chart" }

func (c *Chart) Capabilities() catalog.CapabilitySet {
	return catalog.NewCapabilitySet(catalog.CapabilitySearch, catalog.CapabilityBrowse, catalog.CapabilityLineage)
}

func (c *Chart) DisplayName(e *catalog.Entity) string {
	return displayName(e)
}

func (c *Chart) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return catalog.GenericProperties(e)
}

func (c *Chart) params(e *catalog.Entity) params {
	return params{Label: "Chart", Icon: c.Icon(), Entity: e}
}

func (c *Chart) RenderProfile(w io.Writer, e *catalog.Entity) error {
	return c.tmpl.ExecuteTemplate(w, "entity_profile.html", c.params(e))
}

func (c *Chart) RenderPreview(w io.Writer, e *catalog.Entity) error {
	return c.tmpl.ExecuteTemplate(w, "entity_preview.html", c.params(e))
}

func (c *Chart) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	return c.tmpl.ExecuteTemplate(w, "search_result.html", c.params(e))
}

func (c *Chart) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	return c.tmpl.ExecuteTemplate(w, "browse_rows.html", params{Label: "Charts", Icon: c.Icon(), Entities: entities})
}

// LineageView surfaces the chart's input fields in the lineage node, since
// field provenance is usually what chart consumers are after.
func (c *Chart) LineageView(e *catalog.Entity) *catalog.LineageConfig {
	if len(e.InputFields) == 0 {
		return nil
	}
	return &catalog.LineageConfig{InputFields: e.InputFields}
}
