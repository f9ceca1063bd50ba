// Package entities provides the descriptor implementations for all entity
// types known to the application, plus the default registration order.
package entities

import (
	"html/template"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// RegisterDefaults registers one descriptor per entity type in the fixed
// product order. The order matters: the first registration (dataset) defines
// the default search type.
func RegisterDefaults(reg *registry.Registry, tmpl *template.Template) {
	reg.Register(NewDataset(tmpl))
	reg.Register(NewDashboard(tmpl))
	reg.Register(NewChart(tmpl))
	reg.Register(NewDataFlow(tmpl))
	reg.Register(NewDataJob(tmpl))
	reg.Register(NewUser(tmpl))
	reg.Register(NewGroup(tmpl))
	reg.Register(NewTag(tmpl))
	reg.Register(NewGlossaryTerm(tmpl))
	reg.Register(NewDomain(tmpl))
	reg.Register(NewContainer(tmpl))
}

// params is the data passed to the entity fragment templates.
type params struct {
	// Human-readable singular label of the entity type, e.g. "Dataset".
	Label string
	// Icon key of the entity type.
	Icon     string
	Entity   *catalog.Entity
	Entities []*catalog.Entity
}

// displayName is the default naming rule: the snapshot name if present,
// otherwise the id part of the URN.
func displayName(e *catalog.Entity) string {
	if e == nil {
		return ""
	}
	if e.Name != "" {
		return e.Name
	}
	if u, err := catalog.ParseURN(e.URN); err == nil {
		return u.ID
	}
	return e.URN
}
