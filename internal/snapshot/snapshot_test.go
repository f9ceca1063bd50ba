package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/entities"
	"github.com/dnswlt/metaview/internal/registry"
	"github.com/dnswlt/metaview/internal/store"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	entities.RegisterDefaults(reg, nil)
	return reg
}

func loadFromYAML(t *testing.T, reg *registry.Registry, yamlData string) (*Index, error) {
	t.Helper()
	dir := t.TempDir()
	snapDir := filepath.Join(dir, "snapshots")
	if err := os.MkdirAll(snapDir, 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(snapDir, "entities.yaml"), []byte(yamlData), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return Load(store.NewDiskStore(dir), "snapshots", reg)
}

func TestLoadResolvesRelationships(t *testing.T) {
	idx, err := loadFromYAML(t, newTestRegistry(t), `
urn: urn:li:dataset:(urn:li:dataPlatform:hive,db.orders,PROD)
type: dataset
name: orders
platform: hive
downstream:
  total: 2
  relationships:
    - type: DownstreamOf
      target: urn:li:dataset:(urn:li:dataPlatform:hive,db.agg,PROD)
    - type: DownstreamOf
      target: urn:li:dataset:(urn:li:dataPlatform:hive,db.missing,PROD)
---
urn: urn:li:dataset:(urn:li:dataPlatform:hive,db.agg,PROD)
type: dataset
name: agg
platform: hive
`)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if idx.Size() != 2 {
		t.Fatalf("expected 2 entities, got %d", idx.Size())
	}
	orders := idx.Entity("urn:li:dataset:(urn:li:dataPlatform:hive,db.orders,PROD)")
	if orders == nil {
		t.Fatal("orders entity not found")
	}
	rels := orders.Downstream.Relationships
	if rels[0].Entity == nil || rels[0].Entity.Name != "agg" {
		t.Errorf("expected first relationship resolved to agg, got %v", rels[0].Entity)
	}
	if rels[1].Entity != nil {
		t.Errorf("expected unresolvable relationship to stay nil, got %v", rels[1].Entity)
	}
}

func TestLoadSortsByTypeAndName(t *testing.T) {
	idx, err := loadFromYAML(t, newTestRegistry(t), `
urn: urn:li:dataset:two
type: dataset
name: zebra
---
urn: urn:li:dataset:one
type: dataset
name: aardvark
---
urn: urn:li:tag:pii
type: tag
name: pii
`)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	datasets := idx.ByType(catalog.TypeDataset)
	if len(datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(datasets))
	}
	if datasets[0].Name != "aardvark" || datasets[1].Name != "zebra" {
		t.Errorf("datasets not sorted by name: %s, %s", datasets[0].Name, datasets[1].Name)
	}
	if len(idx.ByType(catalog.TypeTag)) != 1 {
		t.Error("expected 1 tag")
	}
}

func TestLoadDuplicateURN(t *testing.T) {
	_, err := loadFromYAML(t, newTestRegistry(t), `
urn: urn:li:dataset:one
type: dataset
---
urn: urn:li:dataset:one
type: dataset
`)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestLoadTypeMismatch(t *testing.T) {
	_, err := loadFromYAML(t, newTestRegistry(t), `
urn: urn:li:dataset:one
type: chart
`)
	if err == nil || !strings.Contains(err.Error(), "does not match") {
		t.Errorf("expected type mismatch error, got %v", err)
	}
}

func TestLoadUnregisteredType(t *testing.T) {
	_, err := loadFromYAML(t, newTestRegistry(t), `
urn: urn:li:mlModel:one
type: mlModel
`)
	if err == nil {
		t.Error("expected error for unregistered entity type, got nil")
	}
}
