// Package markdown renders project content written in Markdown to HTML.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// md is shared by all renders. Raw HTML in the source is escaped.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// ToHTML converts Markdown source into HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", errors.Wrap(err, "render markdown")
	}

	return buf.String(), nil
}

// Render is ToHTML for templates. An empty source renders to nothing.
func Render(source string) (template.HTML, error) {
	if source == "" {
		return "", nil
	}

	out, err := ToHTML(source)
	if err != nil {
		return "", err
	}

	return template.HTML(out), nil //nolint:gosec
}
