package entities

import (
	"html/template"
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// GlossaryTerm is the descriptor for business glossary term entities.
type GlossaryTerm struct {
	tmpl *template.Template
}

var _ registry.Descriptor = (*GlossaryTerm)(nil)

func NewGlossaryTerm(tmpl *template.Template) *GlossaryTerm {
	return &GlossaryTerm{tmpl: tmpl}
}

func (g *GlossaryTerm) Type() catalog.EntityType { return catalog.TypeGlossaryTerm }
func (g *GlossaryTerm) CollectionName() string   { return "glossaryTerms" }
func (g *GlossaryTerm) PathName() string         { return "glossary" }
func (g *GlossaryTerm) Icon() string             { return "book" }

func (g *GlossaryTerm) Capabilities() catalog.CapabilitySet {
	return catalog.NewCapabilitySet(catalog.CapabilitySearch, catalog.CapabilityBrowse)
}

func (g *GlossaryTerm) DisplayName(e *catalog.Entity) string {
	return displayName(e)
}

func (g *GlossaryTerm) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return nil
}

func (g *GlossaryTerm) params(e *catalog.Entity) params {
	return params{Label: "Glossary Term", Icon: g.Icon(), Entity: e}
}

func (g *GlossaryTerm) RenderProfile(w io.Writer, e *catalog.Entity) error {
	return g.tmpl.ExecuteTemplate(w, "entity_profile.html", g.params(e))
}

func (g *GlossaryTerm) RenderPreview(w io.Writer, e *catalog.Entity) error {
	return g.tmpl.ExecuteTemplate(w, "entity_preview.html", g.params(e))
}

func (g *GlossaryTerm) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	return g.tmpl.ExecuteTemplate(w, "search_result.html", g.params(e))
}

func (g *GlossaryTerm) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	return g.tmpl.ExecuteTemplate(w, "browse_rows.html", params{Label: "Glossary Terms", Icon: g.Icon(), Entities: entities})
}
