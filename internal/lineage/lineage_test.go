package lineage

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// plainDescriptor supports generic projection but has no native lineage view.
type plainDescriptor struct {
	typ     catalog.EntityType
	generic bool
}

func (d *plainDescriptor) Type() catalog.EntityType            { return d.typ }
func (d *plainDescriptor) CollectionName() string              { return string(d.typ) + "s" }
func (d *plainDescriptor) PathName() string                    { return string(d.typ) }
func (d *plainDescriptor) Icon() string                        { return "" }
func (d *plainDescriptor) Capabilities() catalog.CapabilitySet { return nil }
func (d *plainDescriptor) DisplayName(e *catalog.Entity) string {
	return e.Name
}

func (d *plainDescriptor) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	if !d.generic {
		return nil
	}
	return catalog.GenericProperties(e)
}

func (d *plainDescriptor) RenderProfile(w io.Writer, e *catalog.Entity) error      { return nil }
func (d *plainDescriptor) RenderPreview(w io.Writer, e *catalog.Entity) error      { return nil }
func (d *plainDescriptor) RenderSearchResult(w io.Writer, e *catalog.Entity) error { return nil }
func (d *plainDescriptor) RenderBrowse(w io.Writer, es []*catalog.Entity) error    { return nil }

// nativeDescriptor additionally supplies a native lineage view.
type nativeDescriptor struct {
	plainDescriptor
	view *catalog.LineageConfig
}

func (d *nativeDescriptor) LineageView(e *catalog.Entity) *catalog.LineageConfig {
	return d.view
}

func entity(urn, name string) *catalog.Entity {
	return &catalog.Entity{URN: urn, Type: catalog.TypeDataset, Name: name}
}

func TestDeriveConfigFiltersChildren(t *testing.T) {
	reg := registry.New()
	reg.Register(&plainDescriptor{typ: catalog.TypeDataset, generic: true})

	removed := entity("urn:li:dataset:removed", "removed")
	removed.Status = &catalog.Status{Removed: true}
	visible := entity("urn:li:dataset:visible", "visible")

	e := entity("urn:li:dataset:root", "root")
	e.Downstream = &catalog.RelationshipsResult{
		Total: 3,
		Relationships: []*catalog.Relationship{
			{Type: "DownstreamOf", Target: "urn:li:dataset:visible", Entity: visible},
			{Type: "DownstreamOf", Target: "urn:li:dataset:gone"}, // unresolved, Entity == nil
			{Type: "DownstreamOf", Target: "urn:li:dataset:removed", Entity: removed},
		},
	}

	cfg, err := DeriveConfig(reg, catalog.TypeDataset, e)
	if err != nil {
		t.Fatalf("DeriveConfig failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("DeriveConfig returned nil config")
	}

	wantChildren := []catalog.EntityAndType{{Entity: visible, Type: catalog.TypeDataset}}
	if diff := cmp.Diff(wantChildren, cfg.DownstreamChildren); diff != "" {
		t.Errorf("DownstreamChildren mismatch (-want +got):\n%s", diff)
	}
	if len(cfg.DownstreamRelationships) != 1 {
		t.Errorf("DownstreamRelationships = %d entries, want 1", len(cfg.DownstreamRelationships))
	}
	// The total keeps the count reported by the data source.
	if cfg.NumDownstreamChildren != 3 {
		t.Errorf("NumDownstreamChildren = %d, want 3", cfg.NumDownstreamChildren)
	}
	if cfg.NumUpstreamChildren != 0 || cfg.UpstreamChildren != nil {
		t.Errorf("unexpected upstream data: %d children", cfg.NumUpstreamChildren)
	}
	if cfg.URN != e.URN || cfg.Type != catalog.TypeDataset || cfg.Name != "root" {
		t.Errorf("unexpected identity fields: %+v", cfg)
	}
}

func TestDeriveConfigNoData(t *testing.T) {
	reg := registry.New()
	reg.Register(&plainDescriptor{typ: catalog.TypeTag, generic: false})

	e := &catalog.Entity{URN: "urn:li:tag:pii", Type: catalog.TypeTag, Name: "pii"}
	cfg, err := DeriveConfig(reg, catalog.TypeTag, e)
	if err != nil {
		t.Fatalf("DeriveConfig failed: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config for type without lineage data, got %+v", cfg)
	}
}

func TestDeriveConfigUnknownType(t *testing.T) {
	reg := registry.New()
	_, err := DeriveConfig(reg, catalog.TypeDataset, entity("urn:li:dataset:x", "x"))
	if !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("DeriveConfig error = %v, want ErrNotFound", err)
	}
}

func TestDeriveConfigNativeOverride(t *testing.T) {
	reg := registry.New()
	reg.Register(&nativeDescriptor{
		plainDescriptor: plainDescriptor{typ: catalog.TypeDataset, generic: true},
		view:            &catalog.LineageConfig{Name: "hive/root", CanEditLineage: true},
	})

	e := entity("urn:li:dataset:root", "root")
	e.Platform = "hive"
	cfg, err := DeriveConfig(reg, catalog.TypeDataset, e)
	if err != nil {
		t.Fatalf("DeriveConfig failed: %v", err)
	}
	if cfg.Name != "hive/root" {
		t.Errorf("Name = %q, want native override %q", cfg.Name, "hive/root")
	}
	if !cfg.CanEditLineage {
		t.Error("CanEditLineage not taken from native view")
	}
	// Fields the native view does not set keep their generic values.
	if cfg.Platform != "hive" {
		t.Errorf("Platform = %q, want %q", cfg.Platform, "hive")
	}
}

func TestDeriveConfigNativeOnly(t *testing.T) {
	reg := registry.New()
	reg.Register(&nativeDescriptor{
		plainDescriptor: plainDescriptor{typ: catalog.TypeChart, generic: false},
		view: &catalog.LineageConfig{
			InputFields: []*catalog.InputField{{SchemaFieldURN: "urn:li:schemaField:(x,f)"}},
		},
	})

	e := &catalog.Entity{URN: "urn:li:chart:c", Type: catalog.TypeChart, Name: "c"}
	cfg, err := DeriveConfig(reg, catalog.TypeChart, e)
	if err != nil {
		t.Fatalf("DeriveConfig failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config from native view alone, got nil")
	}
	if len(cfg.InputFields) != 1 {
		t.Errorf("InputFields = %d entries, want 1", len(cfg.InputFields))
	}
}
