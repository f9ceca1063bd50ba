package catalog

import (
	"fmt"
	"strings"
)

const urnPrefix = "urn:li:"

// URN is a parsed entity URN of the form urn:li:<entityType>:<id>.
// The id part is opaque; for some types it is itself a parenthesized tuple,
// e.g. urn:li:dataset:(urn:li:dataPlatform:hive,db.tbl,PROD).
type URN struct {
	EntityType EntityType
	ID         string
}

func (u *URN) String() string {
	return urnPrefix + string(u.EntityType) + ":" + u.ID
}

// ParseURN parses s into its entity type and id parts.
func ParseURN(s string) (*URN, error) {
	rest, ok := strings.CutPrefix(s, urnPrefix)
	if !ok {
		return nil, fmt.Errorf("urn %q does not start with %q", s, urnPrefix)
	}
	typ, id, ok := strings.Cut(rest, ":")
	if !ok || typ == "" || id == "" {
		return nil, fmt.Errorf("urn %q is not of the form urn:li:<entityType>:<id>", s)
	}
	return &URN{EntityType: EntityType(typ), ID: id}, nil
}

// MakeURN builds an entity URN from its parts.
func MakeURN(t EntityType, id string) string {
	return (&URN{EntityType: t, ID: id}).String()
}
