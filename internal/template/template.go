// Package template renders the generated nginx configuration blocks from
// embedded templates.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/daymxn/vidos/internal/config"
)

//go:embed nginx/*.tmpl
var nginxTemplates embed.FS

// ServerBlockData contains data for rendering a per-domain server block.
type ServerBlockData struct {
	Source        string
	Destination   string
	CommonInclude string
}

// ServerBlock renders the reverse-proxy server block for a domain. The
// commonInclude path is spliced into the location block so every domain
// shares the same proxy headers.
func ServerBlock(d *config.Domain, commonInclude string) (string, error) {
	return render("nginx/server.tmpl", ServerBlockData{
		Source:        d.Source,
		Destination:   d.Destination,
		CommonInclude: commonInclude,
	})
}

// CommonSettings renders the shared proxy settings file content.
func CommonSettings() (string, error) {
	return render("nginx/common.tmpl", nil)
}

func render(name string, data interface{}) (string, error) {
	content, err := nginxTemplates.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}
