// Package lineage derives the lineage visualization config of an entity from
// its descriptor and raw snapshot data. The derivation is a pure function of
// (registry, entity type, payload): it performs no I/O and has no side
// effects.
package lineage

import (
	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// DeriveConfig merges the generic entity properties of e with the
// descriptor's native lineage view, if it has one.
//
// Both relationship directions are filtered to relationships that reference a
// concrete, non-removed target entity; survivors are mapped to (entity, type)
// children pairs. The filtered relationship lists are kept alongside the
// children, and the totals keep the counts reported by the data source (see
// catalog.RelationshipsResult).
//
// If e has neither generic properties nor a native lineage view, the result
// is (nil, nil): absence of lineage data is a normal state for many entity
// types, not an error.
func DeriveConfig(reg *registry.Registry, t catalog.EntityType, e *catalog.Entity) (*catalog.LineageConfig, error) {
	d, err := reg.Descriptor(t)
	if err != nil {
		return nil, err
	}
	props := d.GenericProperties(e)
	var native *catalog.LineageConfig
	if lv, ok := d.(registry.LineageViewer); ok {
		native = lv.LineageView(e)
	}
	if props == nil && native == nil {
		return nil, nil
	}

	cfg := &catalog.LineageConfig{
		URN:      e.URN,
		Type:     t,
		Name:     d.DisplayName(e),
		Platform: e.Platform,
	}
	if props != nil {
		cfg.Status = props.Status
		cfg.Siblings = props.Siblings
		cfg.SchemaMetadata = props.SchemaMetadata
		cfg.InputFields = props.InputFields
		cfg.FineGrainedLineages = props.FineGrainedLineages
		if props.Privileges != nil {
			cfg.CanEditLineage = props.Privileges.CanEditLineage
		}
		cfg.UpstreamChildren, cfg.UpstreamRelationships, cfg.NumUpstreamChildren = children(props.Upstream)
		cfg.DownstreamChildren, cfg.DownstreamRelationships, cfg.NumDownstreamChildren = children(props.Downstream)
	}
	if native != nil {
		merge(cfg, native)
	}
	return cfg, nil
}

// children filters one relationship direction and maps it to lineage
// children. The returned total is the unfiltered count reported by the data
// source.
func children(rels *catalog.RelationshipsResult) ([]catalog.EntityAndType, []*catalog.Relationship, int) {
	if rels == nil {
		return nil, nil, 0
	}
	var kept []*catalog.Relationship
	var mapped []catalog.EntityAndType
	for _, rel := range rels.Relationships {
		if rel.Entity == nil || rel.Entity.IsRemoved() {
			continue
		}
		kept = append(kept, rel)
		mapped = append(mapped, catalog.EntityAndType{Entity: rel.Entity, Type: rel.Entity.Type})
	}
	return mapped, kept, rels.Total
}

// merge overrides the generically derived fields of cfg with whatever the
// native lineage view supplies.
func merge(cfg, native *catalog.LineageConfig) {
	if native.Name != "" {
		cfg.Name = native.Name
	}
	if native.Platform != "" {
		cfg.Platform = native.Platform
	}
	if native.UpstreamChildren != nil {
		cfg.UpstreamChildren = native.UpstreamChildren
	}
	if native.UpstreamRelationships != nil {
		cfg.UpstreamRelationships = native.UpstreamRelationships
	}
	if native.NumUpstreamChildren != 0 {
		cfg.NumUpstreamChildren = native.NumUpstreamChildren
	}
	if native.DownstreamChildren != nil {
		cfg.DownstreamChildren = native.DownstreamChildren
	}
	if native.DownstreamRelationships != nil {
		cfg.DownstreamRelationships = native.DownstreamRelationships
	}
	if native.NumDownstreamChildren != 0 {
		cfg.NumDownstreamChildren = native.NumDownstreamChildren
	}
	if native.Status != nil {
		cfg.Status = native.Status
	}
	if native.Siblings != nil {
		cfg.Siblings = native.Siblings
	}
	if native.SchemaMetadata != nil {
		cfg.SchemaMetadata = native.SchemaMetadata
	}
	if native.InputFields != nil {
		cfg.InputFields = native.InputFields
	}
	if native.FineGrainedLineages != nil {
		cfg.FineGrainedLineages = native.FineGrainedLineages
	}
	if native.CanEditLineage {
		cfg.CanEditLineage = true
	}
}
