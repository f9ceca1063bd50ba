package entities

import (
	"html/template"
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// Domain is the descriptor for data domain entities.
type Domain struct {
	tmpl *template.Template
}

var _ registry.Descriptor = (*Domain)(nil)

func NewDomain(tmpl *template.Template) *Domain {
	return &Domain{tmpl: tmpl}
}

func (d *Domain) Type() catalog.EntityType { return catalog.TypeDomain }
func (d *Domain) CollectionName() string   { return "domains" }
func (d *Domain) PathName() string         { return "domain" }
func (d *Domain) Icon() string             { return "global" }

func (d *Domain) Capabilities() catalog.CapabilitySet {
	return catalog.NewCapabilitySet(catalog.CapabilitySearch)
}

func (d *Domain) DisplayName(e *catalog.Entity) string {
	return displayName(e)
}

func (d *Domain) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return nil
}

func (d *Domain) params(e *catalog.Entity) params {
	return params{Label: "Domain", Icon: d.Icon(), Entity: e}
}

func (d *Domain) RenderProfile(w io.Writer, e *catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "entity_profile.html", d.params(e))
}

func (d *Domain) RenderPreview(w io.Writer, e *catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "entity_preview.html", d.params(e))
}

func (d *Domain) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "search_result.html", d.params(e))
}

func (d *Domain) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	return d.tmpl.ExecuteTemplate(w, "browse_rows.html", params{Label: "Domains", Icon: d.Icon(), Entities: entities})
}
