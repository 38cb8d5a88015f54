package web

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"
	texttemplate "text/template"

	"github.com/ancientlore/folio/content"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// Options configures a Site.
type Options struct {
	Title     string // Site title passed to templates
	Drafts    bool   // Show unpublished units on listing pages
	AccessLog bool   // Log every request

	// APIOrigins lists the origins allowed to call the JSON API from a
	// browser. CORS headers are not sent when it is empty.
	APIOrigins []string
}

// Site serves the pages and JSON API of a folio site.
type Site struct {
	lib  *content.Library
	fsys fs.FS
	tpl  *template.Template
	smap *texttemplate.Template
	opts Options
}

// errorResponse is the body of JSON errors.
type errorResponse struct {
	Error string `json:"error"`
}

// New returns a Site serving content from lib. Templates and static files
// are read from fsys, which may be nil for a site using only the defaults.
func New(lib *content.Library, fsys fs.FS, opts Options) (*Site, error) {
	tpl, err := loadTemplates(fsys)
	if err != nil {
		return nil, err
	}
	smap, err := loadSitemapTemplate(fsys)
	if err != nil {
		return nil, err
	}
	return &Site{lib: lib, fsys: fsys, tpl: tpl, smap: smap, opts: opts}, nil
}

// Handler returns the routes of the site:
//
//	GET /                    redirect to /blog/
//	GET /{category}/         listing page
//	GET /{category}/{id}     item page
//	GET /api/{category}      listing as JSON
//	GET /api/{category}/{id} item as JSON
//	GET /static/*            files from the static folder
//	GET /sitemap.txt         paths of all listing and item pages
func (s *Site) Handler() http.Handler {
	r := chi.NewRouter()
	if s.opts.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/"+string(content.Blog)+"/", http.StatusFound)
	})
	r.Route("/api", func(r chi.Router) {
		if len(s.opts.APIOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.opts.APIOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
				MaxAge:         300,
			}))
		}
		r.Get("/{category}", s.apiIndex)
		r.Get("/{category}/{id}", s.apiEntry)
	})
	if s.fsys != nil {
		r.Handle("/static/*", s.static())
	}
	r.Get("/"+SitemapFile, s.sitemap)
	r.Get("/{category}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
	})
	r.Get("/{category}/", s.list)
	r.Get("/{category}/{id}", s.item)
	return r
}

// list renders the listing page of a category.
func (s *Site) list(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	listing, err := s.lib.Index(r.Context(), category)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	posts := listing.Posts
	if !s.opts.Drafts {
		posts = published(posts)
	}
	s.render(w, r, "list", data{
		Title: s.opts.Title,
		Page:  PageInfo{Path: r.URL.Path, Category: content.Category(category)},
		Posts: posts,
	})
}

// item renders one unit using its layout, or the "item" template.
func (s *Site) item(w http.ResponseWriter, r *http.Request) {
	category, id := chi.URLParam(r, "category"), chi.URLParam(r, "id")
	entry, err := s.lib.Resolve(r.Context(), category, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	name := "item"
	if entry.Metadata != nil && entry.Metadata.Layout != "" && s.tpl.Lookup(entry.Metadata.Layout) != nil {
		name = entry.Metadata.Layout
	}
	s.render(w, r, name, data{
		Title:    s.opts.Title,
		Page:     PageInfo{Path: r.URL.Path, Category: content.Category(category), ID: id},
		Metadata: entry.Metadata,
		Content:  entry.Content,
	})
}

// apiIndex writes the full listing of a category, drafts included.
func (s *Site) apiIndex(w http.ResponseWriter, r *http.Request) {
	listing, err := s.lib.Index(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		s.failJSON(w, r, err)
		return
	}
	render.JSON(w, r, listing)
}

// apiEntry writes the metadata and rendered content of one unit.
func (s *Site) apiEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.lib.Resolve(r.Context(), chi.URLParam(r, "category"), chi.URLParam(r, "id"))
	if err != nil {
		s.failJSON(w, r, err)
		return
	}
	render.JSON(w, r, entry)
}

// static serves the static folder without directory listings or hidden files.
func (s *Site) static() http.Handler {
	files := http.FileServer(http.FS(s.fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") || hasHiddenElement(r.URL.Path) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// render executes a template into a buffer so errors can still produce a 500.
func (s *Site) render(w http.ResponseWriter, r *http.Request, name string, d data) {
	var out bytes.Buffer
	err := s.tpl.ExecuteTemplate(&out, name, d)
	if err != nil {
		log.Printf("render %s: %s", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(out.Len()))
	_, err = w.Write(out.Bytes())
	if err != nil {
		log.Printf("render %s: %s", name, err)
	}
}

// fail maps core errors to HTTP status codes.
func (s *Site) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("%s: %s", r.URL.Path, err)
	}
	http.Error(w, http.StatusText(code), code)
}

// failJSON is fail for API routes.
func (s *Site) failJSON(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := http.StatusText(code)
	if code == http.StatusInternalServerError {
		log.Printf("%s: %s", r.URL.Path, err)
	}
	render.Status(r, code)
	render.JSON(w, r, errorResponse{Error: msg})
}

func statusFor(err error) int {
	if errors.Is(err, content.ErrNotFound) || errors.Is(err, content.ErrInvalidCategory) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// published drops units that are not marked published.
func published(posts []content.Summary) []content.Summary {
	r := make([]content.Summary, 0, len(posts))
	for _, p := range posts {
		if p.Published {
			r = append(r, p)
		}
	}
	return r
}

// hasHiddenElement reports whether any element of p starts with a period.
func hasHiddenElement(p string) bool {
	for _, part := range strings.Split(p, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
