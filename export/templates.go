package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"bic/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Main       string
	Badge      string
	Position   string
	Resolution int
	Size       int
	Preview    bool
	ID         string
}

func stem(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func expandTemplate(req *Request, main string, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Main:       stem(main),
		Badge:      stem(req.Badge),
		Position:   req.Position.String(),
		Resolution: req.resolution(),
		Size:       req.Size,
		Preview:    req.Preview,
		ID:         req.ID.String(),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
