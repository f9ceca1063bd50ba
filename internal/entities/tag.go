package entities

import (
	"html/template"
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// Tag is the descriptor for tag entities.
type Tag struct {
	tmpl *template.Template
}

var _ registry.Descriptor = (*Tag)(nil)

func NewTag(tmpl *template.Template) *Tag {
	return &Tag{tmpl: tmpl}
}

func (t *Tag) Type() catalog.EntityType { return catalog.TypeTag }
func (t *Tag) CollectionName() string   { return "tags" }
func (t *Tag) PathName() string         { return "tag" }
func (t *Tag) Icon() string             { return "tag" }

func (t *Tag) Capabilities() catalog.CapabilitySet {
	return catalog.NewCapabilitySet(catalog.CapabilitySearch)
}

func (t *Tag) DisplayName(e *catalog.Entity) string {
	return displayName(e)
}

func (t *Tag) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return nil
}

func (t *Tag) params(e *catalog.Entity) params {
	return params{Label: "Tag", Icon: t.Icon(), Entity: e}
}

func (t *Tag) RenderProfile(w io.Writer, e *catalog.Entity) error {
	return t.tmpl.ExecuteTemplate(w, "entity_profile.html", t.params(e))
}

func (t *Tag) RenderPreview(w io.Writer, e *catalog.Entity) error {
	return t.tmpl.ExecuteTemplate(w, "entity_preview.html", t.params(e))
}

func (t *Tag) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	return t.tmpl.ExecuteTemplate(w, "search_result.html", t.params(e))
}

func (t *Tag) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	return t.tmpl.ExecuteTemplate(w, "browse_rows.html", params{Label: "Tags", Icon: t.Icon(), Entities: entities})
}
