package registry

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dnswlt/metaview/internal/catalog"
)

// fakeDescriptor is a minimal descriptor for registry tests. Its render
// methods write recognizable markers instead of executing templates.
type fakeDescriptor struct {
	typ        catalog.EntityType
	collection string
	path       string
	icon       string
	caps       catalog.CapabilitySet
}

func (f *fakeDescriptor) Type() catalog.EntityType             { return f.typ }
func (f *fakeDescriptor) CollectionName() string               { return f.collection }
func (f *fakeDescriptor) PathName() string                     { return f.path }
func (f *fakeDescriptor) Icon() string                         { return f.icon }
func (f *fakeDescriptor) Capabilities() catalog.CapabilitySet  { return f.caps }
func (f *fakeDescriptor) DisplayName(e *catalog.Entity) string { return e.Name }

func (f *fakeDescriptor) GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties {
	return catalog.GenericProperties(e)
}

func (f *fakeDescriptor) RenderProfile(w io.Writer, e *catalog.Entity) error {
	_, err := fmt.Fprintf(w, "profile:%s", f.typ)
	return err
}

func (f *fakeDescriptor) RenderPreview(w io.Writer, e *catalog.Entity) error {
	_, err := fmt.Fprintf(w, "preview:%s", f.typ)
	return err
}

func (f *fakeDescriptor) RenderSearchResult(w io.Writer, e *catalog.Entity) error {
	_, err := fmt.Fprintf(w, "result:%s", f.typ)
	return err
}

func (f *fakeDescriptor) RenderBrowse(w io.Writer, entities []*catalog.Entity) error {
	_, err := fmt.Fprintf(w, "browse:%s:%d", f.typ, len(entities))
	return err
}

// fakeEmbeddable additionally implements EmbeddedProfileRenderer.
type fakeEmbeddable struct {
	fakeDescriptor
}

func (f *fakeEmbeddable) RenderEmbeddedProfile(w io.Writer, e *catalog.Entity) error {
	_, err := fmt.Fprintf(w, "embedded:%s", f.typ)
	return err
}

func newTestRegistry() *Registry {
	r := New()
	r.Register(&fakeDescriptor{
		typ:        catalog.TypeDataset,
		collection: "datasets",
		path:       "dataset",
		icon:       "database",
		caps:       catalog.NewCapabilitySet(catalog.CapabilitySearch, catalog.CapabilityBrowse, catalog.CapabilityLineage),
	})
	r.Register(&fakeEmbeddable{fakeDescriptor{
		typ:        catalog.TypeDashboard,
		collection: "dashboards",
		path:       "dashboard",
		icon:       "dashboard",
		caps:       catalog.NewCapabilitySet(catalog.CapabilitySearch, catalog.CapabilityBrowse),
	}})
	r.Register(&fakeDescriptor{
		typ:        catalog.TypeTag,
		collection: "tags",
		path:       "tag",
		icon:       "tag",
		caps:       catalog.NewCapabilitySet(catalog.CapabilitySearch),
	})
	return r
}

func TestNameRoundTrips(t *testing.T) {
	r := newTestRegistry()
	tests := []struct {
		typ        catalog.EntityType
		collection string
		path       string
	}{
		{catalog.TypeDataset, "datasets", "dataset"},
		{catalog.TypeDashboard, "dashboards", "dashboard"},
		{catalog.TypeTag, "tags", "tag"},
	}
	for _, tc := range tests {
		cn, err := r.CollectionName(tc.typ)
		if err != nil || cn != tc.collection {
			t.Errorf("CollectionName(%q) = (%q, %v), want %q", tc.typ, cn, err, tc.collection)
		}
		typ, err := r.TypeFromCollectionName(tc.collection)
		if err != nil || typ != tc.typ {
			t.Errorf("TypeFromCollectionName(%q) = (%q, %v), want %q", tc.collection, typ, err, tc.typ)
		}
		pn, err := r.PathName(tc.typ)
		if err != nil || pn != tc.path {
			t.Errorf("PathName(%q) = (%q, %v), want %q", tc.typ, pn, err, tc.path)
		}
		typ, err = r.TypeFromPathName(tc.path)
		if err != nil || typ != tc.typ {
			t.Errorf("TypeFromPathName(%q) = (%q, %v), want %q", tc.path, typ, err, tc.typ)
		}
	}
}

func TestLookupNotFound(t *testing.T) {
	r := newTestRegistry()
	_, err := r.TypeFromPathName("nosuchpath")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("TypeFromPathName error = %v, want ErrNotFound", err)
	}
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("error %v is not a *NotFoundError", err)
	}
	if nfe.KeySpace != "path name" || nfe.Key != "nosuchpath" {
		t.Errorf("NotFoundError = %+v, want KeySpace=%q Key=%q", nfe, "path name", "nosuchpath")
	}
	if _, err := r.Descriptor("mlModel"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Descriptor error = %v, want ErrNotFound", err)
	}
}

func TestTypeOrDefaultFromPathName(t *testing.T) {
	r := newTestRegistry()
	if got := r.TypeOrDefaultFromPathName("dataset", catalog.TypeTag); got != catalog.TypeDataset {
		t.Errorf("TypeOrDefaultFromPathName(dataset) = %q, want %q", got, catalog.TypeDataset)
	}
	if got := r.TypeOrDefaultFromPathName("nosuchpath", catalog.TypeTag); got != catalog.TypeTag {
		t.Errorf("TypeOrDefaultFromPathName fallback = %q, want %q", got, catalog.TypeTag)
	}
	if got := r.TypeOrDefaultFromPathName("nosuchpath", ""); got != "" {
		t.Errorf("TypeOrDefaultFromPathName empty fallback = %q, want empty", got)
	}
}

func TestDefaultSearchType(t *testing.T) {
	r := newTestRegistry()
	got, err := r.DefaultSearchType()
	if err != nil {
		t.Fatalf("DefaultSearchType failed: %v", err)
	}
	if got != catalog.TypeDataset {
		t.Errorf("DefaultSearchType = %q, want first-registered %q", got, catalog.TypeDataset)
	}

	empty := New()
	if _, err := empty.DefaultSearchType(); !errors.Is(err, ErrNotFound) {
		t.Errorf("DefaultSearchType on empty registry = %v, want ErrNotFound", err)
	}
}

func TestCapabilityTypeLists(t *testing.T) {
	r := newTestRegistry()
	wantSearch := []catalog.EntityType{catalog.TypeDataset, catalog.TypeDashboard, catalog.TypeTag}
	if diff := cmp.Diff(wantSearch, r.SearchTypes()); diff != "" {
		t.Errorf("SearchTypes mismatch (-want +got):\n%s", diff)
	}
	wantBrowse := []catalog.EntityType{catalog.TypeDataset, catalog.TypeDashboard}
	if diff := cmp.Diff(wantBrowse, r.BrowseTypes()); diff != "" {
		t.Errorf("BrowseTypes mismatch (-want +got):\n%s", diff)
	}
	wantLineage := []catalog.EntityType{catalog.TypeDataset}
	if diff := cmp.Diff(wantLineage, r.LineageTypes()); diff != "" {
		t.Errorf("LineageTypes mismatch (-want +got):\n%s", diff)
	}
}

func TestTypesWithCapability(t *testing.T) {
	r := newTestRegistry()
	want := map[catalog.EntityType]bool{
		catalog.TypeDataset:   true,
		catalog.TypeDashboard: true,
	}
	if diff := cmp.Diff(want, r.TypesWithCapability(catalog.CapabilityBrowse)); diff != "" {
		t.Errorf("TypesWithCapability mismatch (-want +got):\n%s", diff)
	}
}

func TestSupportedCapabilities(t *testing.T) {
	r := newTestRegistry()
	caps, err := r.SupportedCapabilities(catalog.TypeTag)
	if err != nil {
		t.Fatalf("SupportedCapabilities failed: %v", err)
	}
	if !caps.Has(catalog.CapabilitySearch) || caps.Has(catalog.CapabilityLineage) {
		t.Errorf("unexpected capabilities for tag: %v", caps.List())
	}
}

func TestRegisterLastWins(t *testing.T) {
	r := newTestRegistry()
	r.Register(&fakeDescriptor{
		typ:        "slide",
		collection: "slides",
		path:       "dataset", // collides with the dataset path
		icon:       "slide",
		caps:       catalog.NewCapabilitySet(catalog.CapabilitySearch),
	})
	got, err := r.TypeFromPathName("dataset")
	if err != nil {
		t.Fatalf("TypeFromPathName failed: %v", err)
	}
	if got != "slide" {
		t.Errorf("TypeFromPathName after re-registration = %q, want %q", got, "slide")
	}
	// The dataset descriptor itself stays reachable by type.
	if _, err := r.Descriptor(catalog.TypeDataset); err != nil {
		t.Errorf("Descriptor(dataset) failed after path collision: %v", err)
	}
}

func TestRenderDispatch(t *testing.T) {
	r := newTestRegistry()
	e := &catalog.Entity{URN: "urn:li:dataset:x", Type: catalog.TypeDataset, Name: "x"}

	tests := []struct {
		name   string
		render func(w io.Writer) error
		want   string
	}{
		{"profile", func(w io.Writer) error { return r.RenderProfile(catalog.TypeDataset, w, e) }, "profile:dataset"},
		{"preview", func(w io.Writer) error { return r.RenderPreview(catalog.TypeDataset, w, e) }, "preview:dataset"},
		{"searchResult", func(w io.Writer) error { return r.RenderSearchResult(catalog.TypeDataset, w, e) }, "result:dataset"},
		{"browse", func(w io.Writer) error {
			return r.RenderBrowse(catalog.TypeDataset, w, []*catalog.Entity{e})
		}, "browse:dataset:1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			if err := tc.render(&sb); err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if sb.String() != tc.want {
				t.Errorf("rendered %q, want %q", sb.String(), tc.want)
			}
		})
	}
}

func TestRenderEmbeddedProfileFallback(t *testing.T) {
	r := newTestRegistry()
	e := &catalog.Entity{URN: "urn:li:dashboard:d", Type: catalog.TypeDashboard, Name: "d"}

	// Dashboard implements the embedded variant.
	var sb strings.Builder
	if err := r.RenderEmbeddedProfile(catalog.TypeDashboard, &sb, e); err != nil {
		t.Fatalf("RenderEmbeddedProfile failed: %v", err)
	}
	if sb.String() != "embedded:dashboard" {
		t.Errorf("rendered %q, want %q", sb.String(), "embedded:dashboard")
	}

	// Tag does not; it falls back to the plain profile.
	sb.Reset()
	if err := r.RenderEmbeddedProfile(catalog.TypeTag, &sb, e); err != nil {
		t.Fatalf("RenderEmbeddedProfile fallback failed: %v", err)
	}
	if sb.String() != "profile:tag" {
		t.Errorf("rendered %q, want %q", sb.String(), "profile:tag")
	}
}

func TestDescriptorsOrder(t *testing.T) {
	r := newTestRegistry()
	ds := r.Descriptors()
	var types []catalog.EntityType
	for _, d := range ds {
		types = append(types, d.Type())
	}
	want := []catalog.EntityType{catalog.TypeDataset, catalog.TypeDashboard, catalog.TypeTag}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("Descriptors order mismatch (-want +got):\n%s", diff)
	}
}
