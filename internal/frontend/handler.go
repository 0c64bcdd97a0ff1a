package frontend

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// APIBase is the prefix the pages use for JSON calls
const APIBase = "/api/v1"

// Handler renders the thin HTML pages. All data is fetched by the browser from the JSON API.
type Handler struct {
	appName string
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{appName: cfg.App.Name}
}

// Templates parses the embedded page set
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Mount installs the page templates and routes on the engine
func Mount(engine *gin.Engine, h *Handler) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/", h.page("home.html", "Catalog"))
	engine.GET("/login", h.page("login.html", "Sign in"))
	engine.GET("/register", h.page("register.html", "Register"))
	return nil
}

func (h *Handler) page(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, gin.H{
			"AppName": h.appName,
			"Title":   title,
			"APIBase": APIBase,
		})
	}
}
