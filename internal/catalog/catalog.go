// Package catalog defines the model types shared across the application:
// entity types, capability tags, and the snapshot record that holds the raw
// data for a single catalog entity. The types are broadly compatible with the
// entity model of DataHub-style metadata catalogs.
package catalog

import (
	"cmp"
	"slices"
)

// EntityType identifies a category of catalog object (dataset, dashboard, ...).
// The set of types is fixed at startup by registering one descriptor per type.
type EntityType string

const (
	TypeDataset      EntityType = "dataset"
	TypeDashboard    EntityType = "dashboard"
	TypeChart        EntityType = "chart"
	TypeDataFlow     EntityType = "dataFlow"
	TypeDataJob      EntityType = "dataJob"
	TypeCorpUser     EntityType = "corpUser"
	TypeCorpGroup    EntityType = "corpGroup"
	TypeTag          EntityType = "tag"
	TypeGlossaryTerm EntityType = "glossaryTerm"
	TypeDomain       EntityType = "domain"
	TypeContainer    EntityType = "container"
)

// Capability is a named optional behavior an entity type may support.
// Besides the three well-known capabilities below, descriptors may declare
// arbitrary named capabilities.
type Capability string

const (
	CapabilitySearch  Capability = "search"
	CapabilityBrowse  Capability = "browse"
	CapabilityLineage Capability = "lineage"
)

// CapabilitySet is the set of capabilities a descriptor declares.
type CapabilitySet map[Capability]bool

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = true
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

// List returns the capabilities in lexicographic order.
func (s CapabilitySet) List() []Capability {
	caps := make([]Capability, 0, len(s))
	for c := range s {
		caps = append(caps, c)
	}
	slices.Sort(caps)
	return caps
}

// Status holds the soft-deletion state of an entity.
type Status struct {
	Removed bool `yaml:"removed,omitempty"`
}

// Siblings links an entity to its counterparts on other platforms
// (e.g. the same logical dataset in a warehouse and a lakehouse).
type Siblings struct {
	IsPrimary bool     `yaml:"isPrimary,omitempty"`
	URNs      []string `yaml:"urns,omitempty"`
}

// SchemaField is a single field of a dataset schema.
type SchemaField struct {
	FieldPath      string `yaml:"fieldPath"`
	Type           string `yaml:"type,omitempty"`
	NativeDataType string `yaml:"nativeDataType,omitempty"`
	Description    string `yaml:"description,omitempty"`
	Nullable       bool   `yaml:"nullable,omitempty"`
}

// SchemaMetadata is the (latest) schema of a dataset-like entity.
type SchemaMetadata struct {
	Name    string         `yaml:"name,omitempty"`
	Version int            `yaml:"version,omitempty"`
	Fields  []*SchemaField `yaml:"fields,omitempty"`
}

// InputField references a schema field that feeds a chart or dashboard.
type InputField struct {
	SchemaFieldURN string       `yaml:"schemaFieldUrn,omitempty"`
	SchemaField    *SchemaField `yaml:"schemaField,omitempty"`
}

// FineGrainedLineage is a field-level lineage fact: which upstream fields
// produce which downstream fields, and through which transformation.
type FineGrainedLineage struct {
	Upstreams          []string `yaml:"upstreams,omitempty"`
	Downstreams        []string `yaml:"downstreams,omitempty"`
	TransformOperation string   `yaml:"transformOperation,omitempty"`
	ConfidenceScore    float64  `yaml:"confidenceScore,omitempty"`
}

// Privileges are the permissions the current session has on an entity.
type Privileges struct {
	CanEditLineage bool `yaml:"canEditLineage,omitempty"`
}

// Relationship is a single edge of the lineage graph.
// Target is the URN of the entity on the other end; Entity is the resolved
// target and stays nil if the target is not part of the loaded snapshot.
type Relationship struct {
	// The relationship type, e.g. "DownstreamOf", "Consumes", "Produces".
	// [optional]
	Type string `yaml:"type,omitempty"`
	// URN of the target entity.
	// [required]
	Target string `yaml:"target"`

	// Resolved target entity. Populated after loading, not part of the file format.
	Entity *Entity `yaml:"-"`
}

// RelationshipsResult is one direction of an entity's lineage graph.
//
// Total is the total reported by the data source. It is deliberately not
// reduced when relationships are hidden client-side (removed targets,
// unresolvable URNs), so the UI can state how many relationships exist even
// if fewer are shown.
type RelationshipsResult struct {
	Total         int             `yaml:"total,omitempty"`
	Relationships []*Relationship `yaml:"relationships,omitempty"`
}

// Entity is the raw snapshot record for a single catalog entity.
// It is the opaque payload passed to descriptor operations; each descriptor
// interprets the fields relevant to its entity type.
type Entity struct {
	// The entity URN, e.g. "urn:li:dataset:(urn:li:dataPlatform:hive,db.tbl,PROD)".
	// [required]
	URN string `yaml:"urn"`
	// The entity type. Must match the type segment of the URN.
	// [required]
	Type EntityType `yaml:"type"`
	// Display name of the entity.
	// [optional]
	Name string `yaml:"name,omitempty"`
	// The platform the entity lives on (hive, looker, airflow, ...).
	// [optional]
	Platform string `yaml:"platform,omitempty"`
	// A free-text description. Rendered as markdown in the UI.
	// [optional]
	Description string `yaml:"description,omitempty"`
	// Tag names attached to the entity.
	// [optional]
	Tags []string `yaml:"tags,omitempty"`
	// Subtype names, e.g. "view" or "looker explore".
	// [optional]
	SubTypes []string `yaml:"subTypes,omitempty"`
	// Uninterpreted key/value properties shown on the profile page.
	// [optional]
	Properties map[string]string `yaml:"properties,omitempty"`
	// An external link to the entity in its source system.
	// [optional]
	ExternalURL string `yaml:"externalUrl,omitempty"`

	// Soft-deletion status.
	// [optional]
	Status *Status `yaml:"status,omitempty"`
	// Sibling entities on other platforms.
	// [optional]
	Siblings *Siblings `yaml:"siblings,omitempty"`
	// Schema of dataset-like entities.
	// [optional]
	SchemaMetadata *SchemaMetadata `yaml:"schemaMetadata,omitempty"`
	// Fields feeding chart-like entities.
	// [optional]
	InputFields []*InputField `yaml:"inputFields,omitempty"`
	// Field-level lineage facts.
	// [optional]
	FineGrainedLineages []*FineGrainedLineage `yaml:"fineGrainedLineages,omitempty"`
	// Permissions of the current session.
	// [optional]
	Privileges *Privileges `yaml:"privileges,omitempty"`
	// Lineage edges pointing away from / towards this entity.
	// [optional]
	Upstream   *RelationshipsResult `yaml:"upstream,omitempty"`
	Downstream *RelationshipsResult `yaml:"downstream,omitempty"`
}

// IsRemoved reports whether the entity is soft-deleted.
func (e *Entity) IsRemoved() bool {
	return e.Status != nil && e.Status.Removed
}

// CompareEntityByName compares two entities lexicographically by (name, urn).
func CompareEntityByName(a, b *Entity) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.URN, b.URN)
}
