package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"

	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
)

const (
	templateDir       = "templates"
	templateExtension = ".gohtml"
	devTemplatePath   = "./internal/web/" + templateDir
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*
	embeddedTemplates embed.FS
)

// templateEmbedFS roots the embedded files at the templates directory.
type templateEmbedFS struct {
	content embed.FS
}

// Open opens the named file below templates/.
func (e templateEmbedFS) Open(name string) (fs.File, error) {
	return e.content.Open(path.Join(templateDir, name))
}

// newTemplateEngine serves the embedded templates, or the working tree
// copy reloaded on every render in dev mode.
func newTemplateEngine(devMode bool) *html.Engine {
	if devMode {
		engine := html.New(devTemplatePath, templateExtension)
		engine.ShouldReload = true

		log.Warn().Str("path", devTemplatePath).Msg("dev mode enabled: using local filesystem for templates")

		return engine
	}

	return html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), templateExtension)
}
