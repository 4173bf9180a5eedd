// Package view renders the HTML pages of the front end.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"blogger-web/internal/auth"
	"blogger-web/internal/form"
	"blogger-web/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile   = "templates/layout.html"
	partialsFile = "templates/partials.html"
)

// Page is what every template receives. Title and Notice are message keys.
type Page struct {
	Title  string
	Auth   *auth.Controller
	User   *model.User
	Flash  *Flash
	Notice string
	Errors form.Errors
	Data   any
	Locale string
}

type Renderer struct {
	locale string
	pages  map[string]*template.Template
}

// New parses every page template against the shared layout.
func New(locale string) (*Renderer, error) {
	if !SupportedLocale(locale) {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}

	r := &Renderer{locale: locale, pages: map[string]*template.Template{}}
	funcs := template.FuncMap{
		"t": func(key string, args ...any) string {
			return Translate(locale, key, args...)
		},
		"date": formatDate,
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if file == layoutFile || file == partialsFile {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, partialsFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}

	return r, nil
}

func (r *Renderer) Locale() string {
	return r.locale
}

func (r *Renderer) T(key string, args ...any) string {
	return Translate(r.locale, key, args...)
}

// Render writes page name with status. The page is fully rendered before
// anything is written so a template failure still yields a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := r.pages[name]
	if !ok {
		slog.Error("unknown page template", "page", name)
		http.Error(w, "Unexpected server error", http.StatusInternalServerError)
		return
	}

	page.Locale = r.locale
	if page.Auth == nil {
		// Queries on an unrestored controller never touch the store.
		page.Auth = auth.NewController(nil)
	}
	if user, ok := page.Auth.User(); ok {
		page.User = &user
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		slog.Error("page render failed", "page", name, "error", err)
		http.Error(w, "Unexpected server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02.01.2006 15:04")
}
