package rendering

import (
	"html/template"
	"strings"
)

// documentTemplate lays out the classified lines for printing. Every
// style is attached to its own element, so heading styling cannot leak
// into the lines that follow. Page breaks are left to the print engine.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: A4; margin: 18mm; }
  body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; line-height: 1.45; color: #111; margin: 0; }
  h1 { font-size: 22pt; font-weight: 700; margin: 0 0 4pt 0; }
  h2 { font-size: 15pt; font-weight: 700; margin: 10pt 0 3pt 0; border-bottom: 1pt solid #999; }
  h3 { font-size: 12pt; font-weight: 700; margin: 7pt 0 2pt 0; }
  p { font-size: 11pt; margin: 0 0 2pt 0; }
  .bullet { font-size: 11pt; margin: 0 0 2pt 0; padding-left: 16pt; text-indent: -10pt; }
  .blank { height: 8pt; }
</style>
</head>
<body>
{{- range .Lines}}
{{- if eq .Kind "h1"}}
<h1>{{.Text}}</h1>
{{- else if eq .Kind "h2"}}
<h2>{{.Text}}</h2>
{{- else if eq .Kind "h3"}}
<h3>{{.Text}}</h3>
{{- else if eq .Kind "bullet"}}
<p class="bullet">&#8226; {{.Text}}</p>
{{- else if eq .Kind "blank"}}
<div class="blank"></div>
{{- else}}
<p>{{.Text}}</p>
{{- end}}
{{- end}}
</body>
</html>
`

var docTmpl = template.Must(template.New("resume").Parse(documentTemplate))

// HTML renders the document as a standalone page ready for pagination.
// Line text is contextually escaped by html/template.
func HTML(doc *Document) (string, error) {
	var buf strings.Builder
	if err := docTmpl.Execute(&buf, doc); err != nil {
		return "", &RenderError{Message: "failed to execute document template", Cause: err}
	}
	return buf.String(), nil
}
