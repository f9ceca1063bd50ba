// Package registry implements the type-dispatch layer of the catalog UI:
// a registry mapping each entity type to the descriptor that supplies
// rendering, naming, URL, capability, and lineage behavior for that type.
//
// Descriptors are registered once during application startup, strictly before
// any lookup is issued; thereafter all access is read-only. Lookups are O(1)
// through three index maps (entity type, collection name, path name) that are
// built incrementally at registration time.
package registry

import (
	"io"
	"log"
	"slices"

	"github.com/dnswlt/metaview/internal/catalog"
)

type Registry struct {
	// All registered descriptors in registration order. The order is
	// significant: the first-registered descriptor defines the default
	// search type.
	entries []Descriptor

	byType           map[catalog.EntityType]Descriptor
	byCollectionName map[string]catalog.EntityType
	byPathName       map[string]catalog.EntityType
}

func New() *Registry {
	return &Registry{
		byType:           make(map[catalog.EntityType]Descriptor),
		byCollectionName: make(map[string]catalog.EntityType),
		byPathName:       make(map[string]catalog.EntityType),
	}
}

// Register appends d to the registry and indexes it by entity type,
// collection name, and path name.
//
// On a key collision the later registration wins in the affected index.
// Collisions almost always indicate a configuration mistake, so they are
// logged, but registration itself never fails: startup code registers a
// fixed list of descriptors and has no meaningful way to recover.
func (r *Registry) Register(d Descriptor) {
	if prev, ok := r.byType[d.Type()]; ok {
		log.Printf("registry: entity type %q registered twice, replacing %T with %T", d.Type(), prev, d)
	}
	if t, ok := r.byCollectionName[d.CollectionName()]; ok && t != d.Type() {
		log.Printf("registry: collection name %q already registered for type %q, now mapping to %q",
			d.CollectionName(), t, d.Type())
	}
	if t, ok := r.byPathName[d.PathName()]; ok && t != d.Type() {
		log.Printf("registry: path name %q already registered for type %q, now mapping to %q",
			d.PathName(), t, d.Type())
	}
	r.entries = append(r.entries, d)
	r.byType[d.Type()] = d
	r.byCollectionName[d.CollectionName()] = d.Type()
	r.byPathName[d.PathName()] = d.Type()
}

// Descriptor returns the descriptor registered for t.
func (r *Registry) Descriptor(t catalog.EntityType) (Descriptor, error) {
	d, ok := r.byType[t]
	if !ok {
		return nil, notFound("entity type", string(t))
	}
	return d, nil
}

// Descriptors returns all registered descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	return slices.Clone(r.entries)
}

func (r *Registry) typesWithCapability(c catalog.Capability) []catalog.EntityType {
	var types []catalog.EntityType
	for _, d := range r.entries {
		if d.Capabilities().Has(c) {
			types = append(types, d.Type())
		}
	}
	return types
}

// SearchTypes returns the entity types that support search, in registration order.
func (r *Registry) SearchTypes() []catalog.EntityType {
	return r.typesWithCapability(catalog.CapabilitySearch)
}

// BrowseTypes returns the entity types that support browsing, in registration order.
func (r *Registry) BrowseTypes() []catalog.EntityType {
	return r.typesWithCapability(catalog.CapabilityBrowse)
}

// LineageTypes returns the entity types that support lineage, in registration order.
func (r *Registry) LineageTypes() []catalog.EntityType {
	return r.typesWithCapability(catalog.CapabilityLineage)
}

// DefaultSearchType returns the type of the first-registered descriptor.
// It fails if no descriptor has been registered yet.
func (r *Registry) DefaultSearchType() (catalog.EntityType, error) {
	if len(r.entries) == 0 {
		return "", notFound("entity type", "")
	}
	return r.entries[0].Type(), nil
}

// CollectionName returns the API collection name for t.
func (r *Registry) CollectionName(t catalog.EntityType) (string, error) {
	d, err := r.Descriptor(t)
	if err != nil {
		return "", err
	}
	return d.CollectionName(), nil
}

// PathName returns the URL path segment for t.
func (r *Registry) PathName(t catalog.EntityType) (string, error) {
	d, err := r.Descriptor(t)
	if err != nil {
		return "", err
	}
	return d.PathName(), nil
}

// TypeFromCollectionName is the reverse lookup of CollectionName.
func (r *Registry) TypeFromCollectionName(name string) (catalog.EntityType, error) {
	t, ok := r.byCollectionName[name]
	if !ok {
		return "", notFound("collection name", name)
	}
	return t, nil
}

// TypeFromPathName is the reverse lookup of PathName.
func (r *Registry) TypeFromPathName(name string) (catalog.EntityType, error) {
	t, ok := r.byPathName[name]
	if !ok {
		return "", notFound("path name", name)
	}
	return t, nil
}

// TypeOrDefaultFromPathName is like TypeFromPathName, but returns fallback
// (which may be the empty type) instead of failing for unrecognized names.
// It is the only lookup that converts the NotFound failure into a recoverable
// default; every other lookup propagates the failure to the caller.
func (r *Registry) TypeOrDefaultFromPathName(name string, fallback catalog.EntityType) catalog.EntityType {
	if t, ok := r.byPathName[name]; ok {
		return t
	}
	return fallback
}

// Icon returns the icon key for t.
func (r *Registry) Icon(t catalog.EntityType) (string, error) {
	d, err := r.Descriptor(t)
	if err != nil {
		return "", err
	}
	return d.Icon(), nil
}

// DisplayName returns the display name of e according to its descriptor.
func (r *Registry) DisplayName(t catalog.EntityType, e *catalog.Entity) (string, error) {
	d, err := r.Descriptor(t)
	if err != nil {
		return "", err
	}
	return d.DisplayName(e), nil
}

// GenericProperties returns the type-agnostic projection of e. The result is
// nil (without error) for types that do not support generic projection.
func (r *Registry) GenericProperties(t catalog.EntityType, e *catalog.Entity) (*catalog.GenericEntityProperties, error) {
	d, err := r.Descriptor(t)
	if err != nil {
		return nil, err
	}
	return d.GenericProperties(e), nil
}

func (r *Registry) RenderProfile(t catalog.EntityType, w io.Writer, e *catalog.Entity) error {
	d, err := r.Descriptor(t)
	if err != nil {
		return err
	}
	return d.RenderProfile(w, e)
}

func (r *Registry) RenderPreview(t catalog.EntityType, w io.Writer, e *catalog.Entity) error {
	d, err := r.Descriptor(t)
	if err != nil {
		return err
	}
	return d.RenderPreview(w, e)
}

func (r *Registry) RenderSearchResult(t catalog.EntityType, w io.Writer, e *catalog.Entity) error {
	d, err := r.Descriptor(t)
	if err != nil {
		return err
	}
	return d.RenderSearchResult(w, e)
}

func (r *Registry) RenderBrowse(t catalog.EntityType, w io.Writer, entities []*catalog.Entity) error {
	d, err := r.Descriptor(t)
	if err != nil {
		return err
	}
	return d.RenderBrowse(w, entities)
}

// RenderEmbeddedProfile renders the compact profile variant of e.
// Descriptors without an embedded variant fall back to the plain profile.
func (r *Registry) RenderEmbeddedProfile(t catalog.EntityType, w io.Writer, e *catalog.Entity) error {
	d, err := r.Descriptor(t)
	if err != nil {
		return err
	}
	if ep, ok := d.(EmbeddedProfileRenderer); ok {
		return ep.RenderEmbeddedProfile(w, e)
	}
	return d.RenderProfile(w, e)
}

// SupportedCapabilities returns the capability set declared for t.
func (r *Registry) SupportedCapabilities(t catalog.EntityType) (catalog.CapabilitySet, error) {
	d, err := r.Descriptor(t)
	if err != nil {
		return nil, err
	}
	return d.Capabilities(), nil
}

// TypesWithCapability returns the set of registered types declaring c.
// Unlike SearchTypes etc., the result is a true set with no ordering.
func (r *Registry) TypesWithCapability(c catalog.Capability) map[catalog.EntityType]bool {
	types := make(map[catalog.EntityType]bool)
	for _, d := range r.entries {
		if d.Capabilities().Has(c) {
			types[d.Type()] = true
		}
	}
	return types
}
