package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	ports "blogicum/internal/domain/ports/output"
)

//go:embed templates
var templatesFS embed.FS

const layoutName = "base"

// HTMLRenderer renders pages from the embedded templates. Each page is parsed
// together with the base layout and the partials once, at construction.
type HTMLRenderer struct {
	pages map[string]*template.Template
	log   ports.Logger
}

func NewHTMLRenderer(mediaPrefix string, log ports.Logger) (*HTMLRenderer, error) {
	root, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("2 January 2006, 15:04")
		},
		"mediaURL": func(p string) string {
			return path.Join("/", mediaPrefix, p)
		},
		"truncateWords": func(s string, n int) string {
			words := strings.Fields(s)
			if len(words) <= n {
				return s
			}
			return strings.Join(words[:n], " ") + " ..."
		},
	}

	layout, err := template.New(layoutName).Funcs(funcs).ParseFS(root, "base.html", "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{
		PageIndex, PageDetail, PageCategory, PageProfile,
		PagePostForm, PageCommentForm, PageProfileForm,
		PageRegistration, PageLogin,
		PageCSRFFailure, PageNotFound, PageServerError,
	} {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(root, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}

	return &HTMLRenderer{pages: pages, log: log}, nil
}

func (r *HTMLRenderer) Render(c *gin.Context, status int, name string, data any) {
	t, ok := r.pages[name]
	if !ok {
		r.log.Error("Unknown page", slog.String("page", name))
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	buf := new(bytes.Buffer)
	if err := t.ExecuteTemplate(buf, layoutName, data); err != nil {
		r.log.Error("Failed to render page", slog.String("page", name), slog.String("error", err.Error()))
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
