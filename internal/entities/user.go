package entities

import (
	"html/template"
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// User is the descriptor for user entities. Users are searchable but have no
// browse tree, no lineage, and no generic properties projection.
type User struct {
	tmpl *template.Template
}

var _ registry.Descriptor = (*User)(nil)

func NewUser(tmpl *template.Template) *User {
	return &User{tmpl: tmpl}
}

func (u *User) Type() catalog.EntityType { return catalog.TypeCorpUser }
func (u *User) CollectionName() string   { return "corpUsers" }
func (u *User) PathName() string         { return "user" }
func (u *User) Icon() string             { return "user" }

func (u *User) Capabilities() catalog.CapabilitySet {
	return catalog.NewCapabilitySet(catalog.CapabilitySearch)
}

// DisplayName prefers the full name from the snapshot properties over the
// account name in the URN.
func (u *User) DisplayName(e *catalog.Entity) string {
	if e != nil && e.Properties["fullName"] != "" {
		return e.Properties["fullName"]
	}
	return displayName(e)
}

func (u *User) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return nil
}

func (u *User) params(e *catalog.Entity) params {
	return params{Label: "User", Icon: u.Icon(), Entity: e}
}

func (u *User) RenderProfile(w io.Writer, e *catalog.Entity) error {
	return u.tmpl.ExecuteTemplate(w, "entity_profile.html", u.params(e))
}

func (u *User) RenderPreview(w io.Writer, e *catalog.Entity) error {
	return u.tmpl.ExecuteTemplate(w, "entity_preview.html", u.params(e))
}

func (u *User) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	return u.tmpl.ExecuteTemplate(w, "search_result.html", u.params(e))
}

func (u *User) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	return u.tmpl.ExecuteTemplate(w, "browse_rows.html", params{Label: "Users", Icon: u.Icon(), Entities: entities})
}
