// Package render turns a signed week's report rows into an opaque
// document blob. The layout is deliberately simple; callers treat the
// output as bytes and only the embedded fingerprint is contractual.
package render

import (
	"bytes"
	"text/template"
	"time"

	"rapport-backend/internal/domain/report"
)

// Document is the renderer input: header fields, the ordered report
// snapshot, the signature line and the precomputed content fingerprint.
type Document struct {
	CompanyName     string
	WeekID          string
	EmployeeDisplay string
	Rows            []report.Report
	SignatureText   string
	Fingerprint     string
	GeneratedAt     time.Time
}

// Renderer produces the document bytes for a weekly signature.
type Renderer interface {
	Render(doc Document) ([]byte, error)
}

const textLayout = `{{.CompanyName}}
Wochenrapport {{.WeekID}} / {{.EmployeeDisplay}}

{{range .Rows}}{{.Date}}  {{.ProjectName}}  {{printf "%.2f" .Hours}}h  {{.WorkDescription}}
{{end}}
{{.SignatureText}}

Fingerprint: {{.Fingerprint}}
Generated: {{.GeneratedAt.UTC.Format "2006-01-02T15:04:05Z"}}
`

var textTmpl = template.Must(template.New("weekly").Parse(textLayout))

// TextRenderer renders a UTF-8 plain-text document.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

func (TextRenderer) Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := textTmpl.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
