// Package snapshot loads entity snapshot files into an in-memory index and
// resolves the lineage edges between the loaded entities.
package snapshot

import (
	"fmt"
	"slices"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
	"github.com/dnswlt/metaview/internal/store"
)

// Index is an immutable in-memory view of a loaded snapshot.
type Index struct {
	byURN    map[string]*catalog.Entity
	byType   map[catalog.EntityType][]*catalog.Entity
	entities []*catalog.Entity
}

// Load reads all snapshot files under dir from st, validates the entities
// against the registered entity types and resolves relationship targets.
func Load(st store.Store, dir string, reg *registry.Registry) (*Index, error) {
	files, err := store.SnapshotFiles(st, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot files: %w", err)
	}

	idx := &Index{
		byURN:  make(map[string]*catalog.Entity),
		byType: make(map[catalog.EntityType][]*catalog.Entity),
	}

	for _, f := range files {
		entities, err := store.ReadEntities(st, f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", f, err)
		}
		for _, e := range entities {
			if err := validate(e, reg); err != nil {
				return nil, fmt.Errorf("invalid entity in %q: %w", f, err)
			}
			if _, ok := idx.byURN[e.URN]; ok {
				return nil, fmt.Errorf("duplicate entity %q in %q", e.URN, f)
			}
			idx.byURN[e.URN] = e
			idx.byType[e.Type] = append(idx.byType[e.Type], e)
			idx.entities = append(idx.entities, e)
		}
	}

	// Resolve lineage edges now that all entities are known.
	// Edges pointing outside the snapshot keep a nil Entity.
	for _, e := range idx.entities {
		idx.resolve(e.Upstream)
		idx.resolve(e.Downstream)
	}

	for _, es := range idx.byType {
		slices.SortFunc(es, catalog.CompareEntityByName)
	}
	slices.SortFunc(idx.entities, catalog.CompareEntityByName)

	return idx, nil
}

func validate(e *catalog.Entity, reg *registry.Registry) error {
	if e.URN == "" {
		return fmt.Errorf("entity has no urn")
	}
	u, err := catalog.ParseURN(e.URN)
	if err != nil {
		return err
	}
	if e.Type == "" {
		return fmt.Errorf("entity %q has no type", e.URN)
	}
	if u.EntityType != e.Type {
		return fmt.Errorf("entity %q: type %q does not match urn", e.URN, e.Type)
	}
	if _, err := reg.Descriptor(e.Type); err != nil {
		return fmt.Errorf("entity %q: %w", e.URN, err)
	}
	return nil
}

func (idx *Index) resolve(rels *catalog.RelationshipsResult) {
	if rels == nil {
		return
	}
	for _, r := range rels.Relationships {
		r.Entity = idx.byURN[r.Target]
	}
}

// Entity returns the entity with the given URN, or nil if it is not part of
// the snapshot.
func (idx *Index) Entity(urn string) *catalog.Entity {
	return idx.byURN[urn]
}

// Entities returns all entities, sorted by (name, urn).
func (idx *Index) Entities() []*catalog.Entity {
	return idx.entities
}

// ByType returns all entities of the given type, sorted by (name, urn).
func (idx *Index) ByType(t catalog.EntityType) []*catalog.Entity {
	return idx.byType[t]
}

// Size returns the number of entities in the snapshot.
func (idx *Index) Size() int {
	return len(idx.entities)
}
