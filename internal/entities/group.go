package entities

import (
	"html/template"
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// Group is the descriptor for group entities.
type Group struct {
	tmpl *template.Template
}

var _ registry.Descriptor = (*Group)(nil)

func NewGroup(tmpl *template.Template) *Group {
	return &Group{tmpl: tmpl}
}

func (g *Group) Type() catalog.EntityType { return catalog.TypeCorpGroup }
func (g *Group) CollectionName() string   { return "corpGroups" }
func (g *Group) PathName() string         { return "group" }
func (g *Group) Icon() string             { return "team" }

func (g *Group) Capabilities() catalog.CapabilitySet {
	return catalog.NewCapabilitySet(catalog.CapabilitySearch)
}

func (g *Group) DisplayName(e *catalog.Entity) string {
	return displayName(e)
}

func (g *Group) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return nil
}

func (g *Group) params(e *catalog.Entity) params {
	return params{Label: "Group", Icon: g.Icon(), Entity: e}
}

func (g *Group) RenderProfile(w io.Writer, e *catalog.Entity) error {
	return g.tmpl.ExecuteTemplate(w, "entity_profile.html", g.params(e))
}

func (g *Group) RenderPreview(w io.Writer, e *catalog.Entity) error {
	return g.tmpl.ExecuteTemplate(w, "entity_preview.html", g.params(e))
}

func (g *Group) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	return g.tmpl.ExecuteTemplate(w, "search_result.html", g.params(e))
}

func (g *Group) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	return g.tmpl.ExecuteTemplate(w, "browse_rows.html", params{Label: "Groups", Icon: g.Icon(), Entities: entities})
}
