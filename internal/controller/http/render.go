package http

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"blogicum/internal/authz"
	"blogicum/internal/entity"
	"blogicum/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFiles serves the embedded css and images under /static.
func StaticFiles() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"date": func(t time.Time) string {
		return t.Format("2 January 2006, 15:04")
	},
	"datetimeLocal": func(t time.Time) string {
		return t.Format(dateTimeLocalLayout)
	},
	"truncatewords": truncateWords,
	"linebreaksbr": func(s string) template.HTML {
		escaped := template.HTMLEscapeString(s)
		return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
	},
	"profileURL": profileURL,
	"owns":       authz.IsOwner,
	"selected": func(id uint, value string) bool {
		return fmt.Sprint(id) == value
	},
}

func truncateWords(n int, s string) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " …"
}

// templateRender compiles every page together with the shared layout, so
// each page can redefine the "title" and "content" blocks.
type templateRender struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*templateRender)(nil)

func NewRenderer() (render.HTMLRender, error) {
	pages, err := fs.Glob(templatesFS, "templates/*/*.html")
	if err != nil {
		return nil, err
	}

	r := &templateRender{templates: make(map[string]*template.Template)}
	for _, page := range pages {
		name := strings.TrimPrefix(page, "templates/")
		if strings.HasPrefix(name, "includes/") {
			continue
		}

		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templatesFS,
			"templates/base.html",
			"templates/includes/*.html",
			page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

func (r *templateRender) Instance(name string, data any) render.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		panic(fmt.Sprintf("template %q is not defined", name))
	}
	return render.HTML{Template: tmpl, Name: "base", Data: data}
}

// renderPage adds the values every layout needs and renders page.
func renderPage(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["user"] = currentUser(c)
	data["csrf_token"] = c.GetString(middleware.CSRFContextKey)
	data["path"] = c.Request.URL.Path
	c.HTML(status, page, data)
}

func profileURL(user *entity.User) string {
	if user == nil {
		return "/"
	}
	return "/profile/" + pathEscape(user.Username) + "/"
}
