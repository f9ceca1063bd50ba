package registry

import (
	"net/url"
	"strings"

	"github.com/dnswlt/metaview/internal/catalog"
)

// escapeID percent-encodes an entity id for use as a URL path segment.
// The encoding matches RFC 3986 unreserved characters plus !'()* and must
// stay stable: entity URLs are bookmarked and deep-linked, so ids like
// "urn:li:dataset:(foo,bar)" must always encode to the same string
// ("urn%3Ali%3Adataset%3A(foo%2Cbar)").
func escapeID(id string) string {
	s := url.QueryEscape(id)
	s = strings.ReplaceAll(s, "+", "%20")
	for _, r := range []struct{ from, to string }{
		{"%21", "!"},
		{"%27", "'"},
		{"%28", "("},
		{"%29", ")"},
		{"%2A", "*"},
	} {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// EntityURL constructs the relative URL of the entity page for id, appended
// with a query string built from params if any are given. Query keys are
// emitted in sorted order so the same input always yields the same URL.
func (r *Registry) EntityURL(t catalog.EntityType, id string, params map[string]string) (string, error) {
	pathName, err := r.PathName(t)
	if err != nil {
		return "", err
	}
	u := "/" + pathName + "/" + escapeID(id)
	if len(params) > 0 {
		q := make(url.Values, len(params))
		for k, v := range params {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}
	return u, nil
}
