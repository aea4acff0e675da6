// Package web serves the landing page that points visitors at the SSH page.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/tomz197/debugbird/internal/logging"
	"github.com/tomz197/debugbird/internal/portfolio"
)

//go:embed templates/*.html
var templates embed.FS

// Options configure the router.
type Options struct {
	Content portfolio.Content
	SSHHost string
	SSHPort string
	Logger  *log.Logger
}

// SSHCommand is the command a visitor runs to open the page.
func (o Options) SSHCommand() string {
	if o.SSHPort == "" || o.SSHPort == "22" {
		return "ssh " + o.SSHHost
	}
	return fmt.Sprintf("ssh -p %s %s", o.SSHPort, o.SSHHost)
}

// NewRouter builds the gin engine with the landing page and health check.
func NewRouter(opts Options) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	logger := logging.OrDiscard(opts.Logger)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"Name":       opts.Content.Name,
			"Tagline":    opts.Content.Tagline,
			"Logo":       opts.Content.Logo,
			"About":      opts.Content.About,
			"Projects":   opts.Content.Projects,
			"SSHCommand": opts.SSHCommand(),
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r, nil
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
