package catalog

// GenericEntityProperties is the type-agnostic projection of an entity's
// common fields. Descriptors that support generic projection map their raw
// payload onto this shape; consumers (most notably lineage derivation) can
// then treat all entity types uniformly.
type GenericEntityProperties struct {
	Status              *Status
	Siblings            *Siblings
	SchemaMetadata      *SchemaMetadata
	InputFields         []*InputField
	FineGrainedLineages []*FineGrainedLineage
	Privileges          *Privileges
	Upstream            *RelationshipsResult
	Downstream          *RelationshipsResult
}

// GenericProperties projects the snapshot record onto the type-agnostic
// shape. It is the default projection used by descriptors whose entity type
// carries no extra structure.
func GenericProperties(e *Entity) *GenericEntityProperties {
	if e == nil {
		return nil
	}
	return &GenericEntityProperties{
		Status:              e.Status,
		Siblings:            e.Siblings,
		SchemaMetadata:      e.SchemaMetadata,
		InputFields:         e.InputFields,
		FineGrainedLineages: e.FineGrainedLineages,
		Privileges:          e.Privileges,
		Upstream:            e.Upstream,
		Downstream:          e.Downstream,
	}
}

// EntityAndType pairs a lineage child with its entity type.
type EntityAndType struct {
	Entity *Entity
	Type   EntityType
}

// LineageConfig describes an entity's upstream/downstream relationship graph
// as consumed by the lineage visualization.
//
// The children lists contain only relationships whose target entity is part
// of the snapshot and not soft-deleted. NumUpstreamChildren and
// NumDownstreamChildren keep the totals reported by the data source and may
// therefore exceed the lengths of the children lists.
type LineageConfig struct {
	URN      string
	Type     EntityType
	Name     string
	Platform string

	UpstreamChildren        []EntityAndType
	UpstreamRelationships   []*Relationship
	NumUpstreamChildren     int
	DownstreamChildren      []EntityAndType
	DownstreamRelationships []*Relationship
	NumDownstreamChildren   int

	Status              *Status
	Siblings            *Siblings
	SchemaMetadata      *SchemaMetadata
	InputFields         []*InputField
	FineGrainedLineages []*FineGrainedLineage
	CanEditLineage      bool
}
