package registry

import (
	"net/url"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/dnswlt/metaview/internal/catalog"
)

// TestEntityURLDecodesBack checks that the id segment of any entity URL
// decodes back to the original id.
func TestEntityURLDecodesBack(t *testing.T) {
	r := newTestRegistry()
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringN(1, 64, 256).Draw(t, "id")
		if strings.ContainsRune(id, '/') {
			// Ids never contain slashes; URNs use ':' and ',' as separators.
			t.Skip()
		}
		u, err := r.EntityURL(catalog.TypeDataset, id, nil)
		if err != nil {
			t.Fatalf("EntityURL(%q) failed: %v", id, err)
		}
		seg, ok := strings.CutPrefix(u, "/dataset/")
		if !ok {
			t.Fatalf("EntityURL(%q) = %q, missing path prefix", id, u)
		}
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			t.Fatalf("PathUnescape(%q) failed: %v", seg, err)
		}
		if decoded != id {
			t.Fatalf("id round-trip: got %q, want %q", decoded, id)
		}
	})
}

// TestNameRoundTripLaws checks the registry lookup laws for arbitrary
// registered descriptors.
func TestNameRoundTripLaws(t *testing.T) {
	nameGen := rapid.StringMatching(`[a-z][a-zA-Z0-9]{0,14}`)
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		r := New()
		seenTypes := map[string]bool{}
		seenNames := map[string]bool{}
		var registered []*fakeDescriptor
		for i := 0; i < n; i++ {
			typ := nameGen.Draw(t, "type")
			collection := nameGen.Draw(t, "collection")
			path := nameGen.Draw(t, "path")
			// Collisions are last-wins; keep the law checks simple by
			// generating distinct keys only.
			if seenTypes[typ] || seenNames[collection] || seenNames[path] || collection == path {
				t.Skip()
			}
			seenTypes[typ] = true
			seenNames[collection] = true
			seenNames[path] = true
			d := &fakeDescriptor{
				typ:        catalog.EntityType(typ),
				collection: collection,
				path:       path,
				caps:       catalog.NewCapabilitySet(catalog.CapabilitySearch),
			}
			r.Register(d)
			registered = append(registered, d)
		}

		// First registered descriptor defines the default search type.
		def, err := r.DefaultSearchType()
		if err != nil {
			t.Fatalf("DefaultSearchType failed: %v", err)
		}
		if def != registered[0].typ {
			t.Fatalf("DefaultSearchType = %q, want %q", def, registered[0].typ)
		}

		for _, d := range registered {
			typ, err := r.TypeFromCollectionName(d.collection)
			if err != nil || typ != d.typ {
				t.Fatalf("TypeFromCollectionName(%q) = (%q, %v), want %q", d.collection, typ, err, d.typ)
			}
			typ, err = r.TypeFromPathName(d.path)
			if err != nil || typ != d.typ {
				t.Fatalf("TypeFromPathName(%q) = (%q, %v), want %q", d.path, typ, err, d.typ)
			}
		}
	})
}
