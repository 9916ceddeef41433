package app

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed static/index.md
var indexMarkdown []byte

// mdRenderer escapes raw HTML in the markdown source (WithUnsafe is not set).
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var indexLayout = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>Ferien-Checker DE/DK</title>
</head>
<body>
{{.Body}}
<form action="/api/compare" method="get">
  <label>Von <input name="from" value="{{.Defaults.From}}"></label>
  <label>Bis <input name="to" value="{{.Defaults.To}}"></label>
  <label>Bundesland <input name="region" value="{{.Defaults.Region}}"></label>
  <label>Jahr <input name="year" value="{{.Defaults.Year}}"></label>
  <button type="submit">Vergleichen</button>
</form>
</body>
</html>
`))

// renderIndex converts the embedded help text and fills in the form defaults.
func renderIndex(defaults Defaults) ([]byte, error) {
	var body bytes.Buffer
	if err := mdRenderer.Convert(indexMarkdown, &body); err != nil {
		return nil, err
	}
	var page bytes.Buffer
	err := indexLayout.Execute(&page, struct {
		Body     template.HTML
		Defaults Defaults
	}{template.HTML(body.String()), defaults})
	if err != nil {
		return nil, err
	}
	return page.Bytes(), nil
}
