package registry

import (
	"io"

	"github.com/dnswlt/metaview/internal/catalog"
)

// Descriptor is the pluggable per-type implementation of naming, capability,
// and rendering behavior. One descriptor is registered per entity type.
type Descriptor interface {
	// Type returns the entity type this descriptor handles.
	Type() catalog.EntityType
	// CollectionName is the plural name used in API collection routes,
	// e.g. "datasets".
	CollectionName() string
	// PathName is the URL path segment for entities of this type,
	// e.g. "dataset".
	PathName() string
	// Icon is the key of the icon shown for this entity type in the UI.
	Icon() string
	// Capabilities returns the set of capabilities this type supports.
	Capabilities() catalog.CapabilitySet

	// DisplayName returns the name to present for the given entity.
	DisplayName(e *catalog.Entity) string
	// GenericProperties projects the raw payload onto the type-agnostic
	// shape. Types that do not support generic projection return nil.
	GenericProperties(e *catalog.Entity) *catalog.GenericEntityProperties

	RenderProfile(w io.Writer, e *catalog.Entity) error
	RenderPreview(w io.Writer, e *catalog.Entity) error
	RenderSearchResult(w io.Writer, e *catalog.Entity) error
	RenderBrowse(w io.Writer, entities []*catalog.Entity) error
}

// EmbeddedProfileRenderer is implemented by descriptors that provide a
// compact profile variant for embedding into other pages. Descriptors without
// it fall back to the plain profile rendering; this is an optional override,
// not a failure.
type EmbeddedProfileRenderer interface {
	RenderEmbeddedProfile(w io.Writer, e *catalog.Entity) error
}

// LineageViewer is implemented by descriptors that provide a native lineage
// view of their entities. Whatever the native view supplies overrides the
// generically derived fields during lineage config derivation.
type LineageViewer interface {
	LineageView(e *catalog.Entity) *catalog.LineageConfig
}
