package entities

import (
	"html/template"
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// Container is the descriptor for container entities (databases, schemas,
// folders — anything that groups other catalog entities).
type Container struct {
	tmpl *template.Template
}

var _ registry.Descriptor = (*Container)(nil)

func NewContainer(tmpl *template.Template) *Container {
	return &Container{tmpl: tmpl}
}

func (c *Container) Type() catalog.EntityType { return catalog.TypeContainer }
func (c *Container) CollectionName() string   { return "containers" }
func (c *Container) PathName() string         { return "container" }
func (c *Container) Icon() string             { return "folder" }

func (c *Container) Capabilities() catalog.CapabilitySet {
	return catalog.NewCapabilitySet(catalog.CapabilitySearch, catalog.CapabilityBrowse)
}

func (c *Container) DisplayName(e *catalog.Entity) string {
	return displayName(e)
}

func (c *Container) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return catalog.GenericProperties(e)
}

func (c *Container) params(e *catalog.Entity) params {
	return params{Label: "Container", Icon: c.Icon(), Entity: e}
}

func (c *Container) RenderProfile(w io.Writer, e *catalog.Entity) error {
	return c.tmpl.ExecuteTemplate(w, "entity_profile.html", c.params(e))
}

func (c *Container) RenderPreview(w io.Writer, e *catalog.Entity) error {
	return c.tmpl.ExecuteTemplate(w, "entity_preview.html", c.params(e))
}

func (c *Container) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	return c.tmpl.ExecuteTemplate(w, "search_result.html", c.params(e))
}

func (c *Container) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	return c.tmpl.ExecuteTemplate(w, "browse_rows.html", params{Label: "Containers", Icon: c.Icon(), Entities: entities})
}
