// Package web serves the catalog UI. All pages are rendered server-side;
// dynamic parts (search-as-you-type) use htmx fragment requests.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dnswlt/metaview"
	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/config"
	"github.com/dnswlt/metaview/internal/lineage"
	"github.com/dnswlt/metaview/internal/registry"
	"github.com/dnswlt/metaview/internal/search"
	"github.com/dnswlt/metaview/internal/snapshot"
)

const defaultCacheSize = 256

type ServerOptions struct {
	Addr      string // E.g., "localhost:8080"
	BaseDir   string // Directory from which resources (templates etc.) are read.
	CacheSize int    // Max number of cached rendered fragments.
	Version   string // Version string shown in the page footer.
}

type Server struct {
	opts     ServerOptions
	template *template.Template
	registry *registry.Registry
	index    *snapshot.Index
	cfg      *config.Bundle
	// Cache for rendered profile and lineage fragments. The snapshot is
	// immutable after loading, so entries never need invalidation.
	fragCache *lru.Cache[string, []byte]
}

func NewServer(opts ServerOptions, reg *registry.Registry, idx *snapshot.Index, cfg *config.Bundle, tmpl *template.Template) (*Server, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create fragment cache: %v", err)
	}
	if cfg == nil {
		cfg = &config.Bundle{}
	}
	return &Server{
		opts:      opts,
		template:  tmpl,
		registry:  reg,
		index:     idx,
		cfg:       cfg,
		fragCache: cache,
	}, nil
}

func (s *Server) isHX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func (s *Server) renderErrorSnippet(w http.ResponseWriter, errorMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	s.template.ExecuteTemplate(w, "_error.html", map[string]any{
		"Error": errorMsg,
	})
}

// navTitle turns a camelCase collection name into a nav bar title,
// e.g. "dataFlows" => "Data Flows".
func navTitle(collectionName string) string {
	var sb strings.Builder
	for i, r := range collectionName {
		if i == 0 {
			sb.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *Server) navBar(r *http.Request) NavBar {
	items := []*NavBarItem{
		NavItem("/search", "Search").Params("q"),
	}
	for _, t := range s.registry.BrowseTypes() {
		d, err := s.registry.Descriptor(t)
		if err != nil {
			continue
		}
		items = append(items, NavItem("/browse/"+d.PathName(), navTitle(d.CollectionName())))
	}
	return NewNavBar(items...).SetActive(r.URL.Path).SetParams(r.URL.Query())
}

func (s *Server) serveHTMLPage(w http.ResponseWriter, r *http.Request, templateFile string, params map[string]any) {
	var output bytes.Buffer

	templateParams := map[string]any{
		"Now":      time.Now().Format("2006-01-02 15:04:05"),
		"NavBar":   s.navBar(r),
		"Version":  s.opts.Version,
		"HelpLink": s.cfg.UI.HelpLink,
	}
	// Copy template params
	for k, v := range params {
		templateParams[k] = v
	}

	err := s.template.ExecuteTemplate(&output, templateFile, templateParams)
	if err != nil {
		log.Printf("Failed to render template %q: %v", templateFile, err)
		http.Error(w, "Template rendering error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.Write(output.Bytes())
}

// serveNotFoundPage renders the full 404 page. Unknown entity types and URNs
// are an expected consequence of stale links, so they get a friendly page,
// not a bare error.
func (s *Server) serveNotFoundPage(w http.ResponseWriter, r *http.Request, what string) {
	var output bytes.Buffer
	err := s.template.ExecuteTemplate(&output, "notfound.html", map[string]any{
		"Now":      time.Now().Format("2006-01-02 15:04:05"),
		"NavBar":   s.navBar(r),
		"Version":  s.opts.Version,
		"HelpLink": s.cfg.UI.HelpLink,
		"What":     what,
	})
	if err != nil {
		log.Printf("Failed to render template notfound.html: %v", err)
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(output.Bytes())
}

func (s *Server) serveSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if !r.URL.Query().Has("q") {
		q = s.cfg.Search.DefaultQuery
	}
	params := map[string]any{"Query": q}

	results, err := s.searchResults(q)
	if err != nil {
		if s.isHX(r) {
			s.renderErrorSnippet(w, err.Error())
			return
		}
		params["Error"] = err.Error()
	}
	params["Results"] = results

	if s.isHX(r) {
		// htmx request: only render result rows
		s.serveHTMLPage(w, r, "search_results.html", params)
		return
	}
	// full page
	s.serveHTMLPage(w, r, "search.html", params)
}

// searchResults compiles q and renders the search result fragment of every
// matching entity. Entity types that do not declare the search capability
// are never considered.
func (s *Server) searchResults(q string) ([]template.HTML, error) {
	m, err := search.Compile(q)
	if err != nil {
		return nil, err
	}
	var results []template.HTML
	for _, t := range s.registry.SearchTypes() {
		for _, e := range s.index.ByType(t) {
			name, err := s.registry.DisplayName(t, e)
			if err != nil {
				return nil, err
			}
			ok, err := m.Matches(search.Summarize(e, name))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			var buf bytes.Buffer
			if err := s.registry.RenderSearchResult(t, &buf, e); err != nil {
				log.Printf("Failed to render search result for %q: %v", e.URN, err)
				continue
			}
			results = append(results, template.HTML(buf.String()))
		}
	}
	return results, nil
}

func (s *Server) serveBrowse(w http.ResponseWriter, r *http.Request, pathSeg string) {
	t := s.registry.TypeOrDefaultFromPathName(pathSeg, "")
	if t == "" {
		s.serveNotFoundPage(w, r, fmt.Sprintf("entity type %q", pathSeg))
		return
	}
	caps, err := s.registry.SupportedCapabilities(t)
	if err != nil || !caps.Has(catalog.CapabilityBrowse) {
		s.serveNotFoundPage(w, r, fmt.Sprintf("browse page for %q", pathSeg))
		return
	}
	entities := s.index.ByType(t)

	var buf bytes.Buffer
	if err := s.registry.RenderBrowse(t, &buf, entities); err != nil {
		log.Printf("Failed to render browse rows for %q: %v", t, err)
		http.Error(w, "Template rendering error", http.StatusInternalServerError)
		return
	}
	if s.isHX(r) {
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		w.Write(buf.Bytes())
		return
	}
	d, _ := s.registry.Descriptor(t)
	s.serveHTMLPage(w, r, "browse.html", map[string]any{
		"Title":   navTitle(d.CollectionName()),
		"Count":   len(entities),
		"Content": template.HTML(buf.String()),
	})
}

// resolveEntity maps a (path segment, urn) request pair to the snapshot
// entity, or writes the 404 page and returns nil.
func (s *Server) resolveEntity(w http.ResponseWriter, r *http.Request, pathSeg, urn string) (catalog.EntityType, *catalog.Entity) {
	t := s.registry.TypeOrDefaultFromPathName(pathSeg, "")
	if t == "" {
		s.serveNotFoundPage(w, r, fmt.Sprintf("entity type %q", pathSeg))
		return "", nil
	}
	e := s.index.Entity(urn)
	if e == nil || e.Type != t {
		s.serveNotFoundPage(w, r, fmt.Sprintf("entity %q", urn))
		return "", nil
	}
	return t, e
}

// renderCached returns the cached fragment for cacheKey, rendering and
// caching it on a miss.
func (s *Server) renderCached(cacheKey string, render func(w *bytes.Buffer) error) ([]byte, error) {
	if frag, ok := s.fragCache.Get(cacheKey); ok {
		return frag, nil
	}
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return nil, err
	}
	frag := buf.Bytes()
	s.fragCache.Add(cacheKey, frag)
	return frag, nil
}

func (s *Server) serveEntity(w http.ResponseWriter, r *http.Request, pathSeg, urn string) {
	t, e := s.resolveEntity(w, r, pathSeg, urn)
	if e == nil {
		return
	}
	frag, err := s.renderCached("profile/"+urn, func(buf *bytes.Buffer) error {
		return s.registry.RenderProfile(t, buf, e)
	})
	if err != nil {
		log.Printf("Failed to render profile for %q: %v", urn, err)
		http.Error(w, "Template rendering error", http.StatusInternalServerError)
		return
	}
	name, _ := s.registry.DisplayName(t, e)
	s.serveHTMLPage(w, r, "entity.html", map[string]any{
		"Title":   name,
		"Entity":  e,
		"Content": template.HTML(frag),
	})
}

func (s *Server) serveEmbeddedEntity(w http.ResponseWriter, r *http.Request, pathSeg, urn string) {
	t, e := s.resolveEntity(w, r, pathSeg, urn)
	if e == nil {
		return
	}
	frag, err := s.renderCached("embed/"+urn, func(buf *bytes.Buffer) error {
		return s.registry.RenderEmbeddedProfile(t, buf, e)
	})
	if err != nil {
		log.Printf("Failed to render embedded profile for %q: %v", urn, err)
		http.Error(w, "Template rendering error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.Write(frag)
}

func (s *Server) serveLineage(w http.ResponseWriter, r *http.Request, pathSeg, urn string) {
	t, e := s.resolveEntity(w, r, pathSeg, urn)
	if e == nil {
		return
	}
	cfg, err := lineage.DeriveConfig(s.registry, t, e)
	if err != nil {
		log.Printf("Failed to derive lineage config for %q: %v", urn, err)
		http.Error(w, "Failed to derive lineage", http.StatusInternalServerError)
		return
	}
	frag, err := s.renderCached("lineage/"+urn, func(buf *bytes.Buffer) error {
		// cfg is nil for entities without lineage data; the template
		// renders an empty-state hint in that case.
		return s.template.ExecuteTemplate(buf, "lineage_view.html", map[string]any{
			"Entity": e,
			"Config": cfg,
		})
	})
	if err != nil {
		log.Printf("Failed to render lineage for %q: %v", urn, err)
		http.Error(w, "Template rendering error", http.StatusInternalServerError)
		return
	}
	name, _ := s.registry.DisplayName(t, e)
	s.serveHTMLPage(w, r, "lineage.html", map[string]any{
		"Title":   name,
		"Entity":  e,
		"Content": template.HTML(frag),
	})
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /search", func(w http.ResponseWriter, r *http.Request) {
		s.serveSearch(w, r)
	})
	mux.HandleFunc("GET /browse/{pathSeg}", func(w http.ResponseWriter, r *http.Request) {
		s.serveBrowse(w, r, r.PathValue("pathSeg"))
	})

	// One set of entity routes per registered path name. Registering them
	// individually (instead of a "/{pathSeg}/{urn}" wildcard) keeps the
	// top-level patterns free of conflicts with /static/ and /search.
	for _, d := range s.registry.Descriptors() {
		pathSeg := d.PathName()
		mux.HandleFunc("GET /"+pathSeg+"/{urn}", func(w http.ResponseWriter, r *http.Request) {
			s.serveEntity(w, r, pathSeg, r.PathValue("urn"))
		})
		mux.HandleFunc("GET /lineage/"+pathSeg+"/{urn}", func(w http.ResponseWriter, r *http.Request) {
			s.serveLineage(w, r, pathSeg, r.PathValue("urn"))
		})
		mux.HandleFunc("GET /embed/"+pathSeg+"/{urn}", func(w http.ResponseWriter, r *http.Request) {
			s.serveEmbeddedEntity(w, r, pathSeg, r.PathValue("urn"))
		})
	}

	// Health check. Useful for cloud deployments.
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})

	// Static resources (JavaScript, CSS, etc.)
	if s.opts.BaseDir == "" {
		mux.Handle("GET /static/", http.FileServer(http.FS(metaview.Files)))
	} else {
		staticFS := http.Dir(path.Join(s.opts.BaseDir, "static"))
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(staticFS)))
	}

	// Default route (all other paths). The root redirects to the home page;
	// everything else, including entity paths with an unrecognized path
	// segment, gets the 404 page.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "", http.StatusBadRequest)
			return
		}
		if r.Header.Get("Hx-Request") != "" {
			// Do not redirect htmx requests, those should only request valid paths.
			http.Error(w, "", http.StatusNotFound)
			return
		}
		if r.URL.Path != "/" {
			refererURL, err := url.Parse(r.Header.Get("Referer"))
			if err == nil && refererURL.Host == r.Host {
				// Request is coming from our own domain: this indicates an internal broken link.
				http.Error(w, "Broken link", http.StatusNotFound)
				return
			}
			s.serveNotFoundPage(w, r, fmt.Sprintf("page %q", r.URL.Path))
			return
		}
		// Redirect GET / to the UI home page.
		http.Redirect(w, r, "/search", http.StatusTemporaryRedirect)
	})

	return mux
}

// Serve starts the HTTP server on s.opts.Addr using the wrapped handler.
func (s *Server) Serve() error {
	handler := s.Handler()
	log.Printf("Go server listening on http://%s", s.opts.Addr)
	return http.ListenAndServe(s.opts.Addr, handler)
}

func (s *Server) Handler() http.Handler {
	return s.withRequestLogging(s.routes())
}
