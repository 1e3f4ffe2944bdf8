package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"DayTradeDesk/internal/model"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/index.html
var templateFS embed.FS

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type chartBlock struct {
	ID         string
	Heading    string
	Descriptor template.JS // JSON view handed to the browser renderer
}

type pageData struct {
	Examples []string
	Ticker   string
	Error    string
	Analysis *model.Analysis
	Summary  template.HTML
	Charts   []chartBlock
}

func (d *pageData) fill(a *model.Analysis) error {
	summary, err := RenderMarkdown(a.Summary)
	if err != nil {
		return err
	}
	d.Analysis = a
	d.Summary = summary

	d.Charts = make([]chartBlock, 0, len(a.Charts))
	for i, view := range a.Charts {
		raw, err := json.Marshal(view)
		if err != nil {
			return fmt.Errorf("encode %s view: %w", view.Kind(), err)
		}
		d.Charts = append(d.Charts, chartBlock{
			ID:         fmt.Sprintf("chart-%d", i),
			Heading:    view.Heading(),
			Descriptor: template.JS(raw),
		})
	}
	return nil
}

// RenderMarkdown converts the agent summary to HTML. Raw HTML in the
// source is dropped by goldmark's default renderer.
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
