// Package search compiles and evaluates search expressions over entity
// summaries. Expressions use CEL (https://github.com/google/cel-go) with the
// variables name, urn, type, platform, tags, and removed, e.g.
//
//	platform == "hive" && "pii" in tags
//	name.contains("orders") && !removed
//
// As a convenience, a query that is just a bare word is treated as a
// case-insensitive substring match on the entity name.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/dnswlt/metaview/internal/catalog"
)

// Summary is the kind-agnostic projection of an entity used for matching.
type Summary struct {
	URN      string
	Name     string
	Type     catalog.EntityType
	Platform string
	Tags     []string
	Removed  bool
}

// Summarize builds the search summary of an entity with the given display name.
func Summarize(e *catalog.Entity, displayName string) Summary {
	return Summary{
		URN:      e.URN,
		Name:     displayName,
		Type:     e.Type,
		Platform: e.Platform,
		Tags:     e.Tags,
		Removed:  e.IsRemoved(),
	}
}

// bareWordRe matches single-word queries without any CEL syntax, e.g.
// "fct_orders". Those are treated as name substring searches.
var bareWordRe = regexp.MustCompile(`^[\w./-]+$`)

// Matcher is a compiled search expression. A Matcher is safe for repeated
// use; compile once per query, then call Matches per entity.
type Matcher struct {
	prog   cel.Program
	substr string // lower-cased; set instead of prog for bare-word queries
	all    bool   // empty query: match everything
}

// Compile compiles q into a Matcher. Invalid expressions are a compile
// error; callers typically translate that into an empty result list.
func Compile(q string) (*Matcher, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return &Matcher{all: true}, nil
	}
	// Single bare words are name substring searches, except for words that
	// are themselves valid boolean CEL expressions (e.g. "removed").
	if bareWordRe.MatchString(q) && q != "removed" && q != "true" && q != "false" {
		return &Matcher{substr: strings.ToLower(q)}, nil
	}

	env, err := cel.NewEnv(
		cel.Variable("urn", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("type", cel.StringType),
		cel.Variable("platform", cel.StringType),
		cel.Variable("tags", cel.ListType(cel.StringType)),
		cel.Variable("removed", cel.BoolType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %v", err)
	}
	ast, iss := env.Compile(q)
	if iss.Err() != nil {
		return nil, fmt.Errorf("invalid search expression: %v", iss.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("search expression must evaluate to bool, got %v", ast.OutputType())
	}
	prog, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build CEL program: %v", err)
	}
	return &Matcher{prog: prog}, nil
}

// Matches evaluates the compiled expression against s.
func (m *Matcher) Matches(s Summary) (bool, error) {
	if m.all {
		return true, nil
	}
	if m.substr != "" {
		return strings.Contains(strings.ToLower(s.Name), m.substr), nil
	}
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	out, _, err := m.prog.Eval(map[string]any{
		"urn":      s.URN,
		"name":     s.Name,
		"type":     string(s.Type),
		"platform": s.Platform,
		"tags":     tags,
		"removed":  s.Removed,
	})
	if err != nil {
		return false, fmt.Errorf("search evaluation failed: %v", err)
	}
	v, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("search expression returned %T, want bool", out.Value())
	}
	return v, nil
}
