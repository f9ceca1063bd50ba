package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/dnswlt/metaview"
	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/registry"
)

// LoadTemplates parses the page and fragment templates with the template
// funcs bound to reg. If baseDir is empty, the templates embedded into the
// binary are used, otherwise they are read from baseDir/templates.
//
// The returned template set is shared between the web server and the entity
// descriptors, which render their fragments through it.
func LoadTemplates(baseDir string, reg *registry.Registry) (*template.Template, error) {
	tmpl := template.New("root")
	tmpl = tmpl.Funcs(map[string]any{
		"toURL": func(s any) (string, error) {
			return toURL(reg, s)
		},
		"lineageURL": func(e *catalog.Entity) (string, error) {
			return lineageURL(reg, e)
		},
		"icon": func(t catalog.EntityType) string {
			ic, err := reg.Icon(t)
			if err != nil {
				return ""
			}
			return ic
		},
		"displayName": func(e *catalog.Entity) (string, error) {
			if e == nil {
				return "", nil
			}
			return reg.DisplayName(e.Type, e)
		},
		"urlencode": urlencode,
		"markdown":  markdown,
	})
	if baseDir == "" {
		return tmpl.ParseFS(metaview.Files, "templates/*.html")
	}
	return tmpl.ParseGlob(path.Join(baseDir, "templates/*.html"))
}

// toURL returns the entity page URL for its argument, which may be an entity
// or a URN string.
func toURL(reg *registry.Registry, s any) (string, error) {
	switch e := s.(type) {
	case *catalog.Entity:
		if e == nil {
			return "", fmt.Errorf("toURL: nil entity")
		}
		return reg.EntityURL(e.Type, e.URN, nil)
	case string:
		u, err := catalog.ParseURN(e)
		if err != nil {
			return "", fmt.Errorf("invalid urn for toURL: %v", err)
		}
		return reg.EntityURL(u.EntityType, e, nil)
	}
	return "", fmt.Errorf("toURL: invalid argument type %T", s)
}

// lineageURL returns the lineage page URL for e.
func lineageURL(reg *registry.Registry, e *catalog.Entity) (string, error) {
	u, err := reg.EntityURL(e.Type, e.URN, nil)
	if err != nil {
		return "", err
	}
	return "/lineage" + u, nil
}

func urlencode(s string) (string, error) {
	return url.PathEscape(s), nil
}

type NavBar []*NavBarItem

type NavBarItem struct {
	path        string
	queryParams map[string]string
	params      []string
	Title       string
	Active      bool
}

func (n *NavBarItem) URI() string {
	var u url.URL
	u.Path = n.path
	q := make(url.Values)
	for k, v := range n.queryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (n *NavBarItem) Params(params ...string) *NavBarItem {
	n.params = params
	return n
}

func (n *NavBarItem) ParamsList() string {
	return strings.Join(n.params, ",")
}

func NavItem(path, title string) *NavBarItem {
	return &NavBarItem{
		path:        path,
		Title:       title,
		queryParams: make(map[string]string),
	}
}

func NewNavBar(items ...*NavBarItem) NavBar {
	return items
}

func (ns NavBar) SetActive(activePath string) NavBar {
	activePath = strings.TrimSuffix(activePath, "/")
	for _, n := range ns {
		if activePath == strings.TrimSuffix(n.path, "/") {
			n.Active = true
			break
		}
	}
	return ns
}

func (ns NavBar) SetParam(key, value string) NavBar {
	for _, n := range ns {
		if slices.Contains(n.params, key) {
			n.queryParams[key] = value
		}
	}
	return ns
}

func (ns NavBar) SetParams(q url.Values) NavBar {
	for k := range q {
		if v := q.Get(k); v != "" {
			ns = ns.SetParam(k, q.Get(k))
		}
	}
	return ns
}

func markdown(input string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(input), &buf); err != nil {
		return "", fmt.Errorf("failed to process markdown: %v", err)
	}
	return template.HTML(buf.String()), nil
}
