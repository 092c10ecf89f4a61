package cli

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/go-ksp/internal/models"
	"github.com/jakoblorz/go-ksp/internal/study"
	"github.com/jakoblorz/go-ksp/internal/tui"
)

// InfoView is everything the info command shows about a project
type InfoView struct {
	Path        string           `json:"path"`
	General     models.General   `json:"general"`
	Groups      []*models.Group  `json:"groups"`
	Application *ApplicationView `json:"application,omitempty"`
	Objects     []study.Object   `json:"objects"`
}

// ApplicationView is the attached application and its settings
type ApplicationView struct {
	Module   string         `json:"module"`
	Settings map[string]any `json:"settings"`
}

const infoTemplate = `{{ title "Project" }} {{ .Path }}

{{ key (printf "%-17s" "Plugin version") }} {{ .General.PluginVersion | default "unknown" }}
{{ key (printf "%-17s" "Salome version") }} {{ .General.SalomeVersion | default "unknown" }}
{{ key (printf "%-17s" "Created") }} {{ .General.CreationTime | default "unknown" }}
{{ key (printf "%-17s" "Operating system") }} {{ .General.OperatingSystem | default "unknown" }}

{{ header "Groups" }} {{ len .Groups }}
{{- range .Groups }}
  {{ printf "%-16s" .Name }} {{ .EntityType | toString | lower | printf "%-8s" }} {{ len .Entries }} {{ ternary "entry" "entries" (eq (len .Entries) 1) }}
{{- else }}
  {{ subtle "none" }}
{{- end }}

{{ header "Application" }}
{{- with .Application }}
  {{ key "Module" }} {{ .Module }}
  {{- $settings := .Settings }}
  {{- range keys $settings | sortAlpha }}
  {{ printf "%-16s" . }} {{ index $settings . }}
  {{- end }}
{{- else }}
  {{ subtle "none" }}
{{- end }}

{{ header "Study" }} {{ len .Objects }} {{ ternary "object" "objects" (eq (len .Objects) 1) }}
{{- range .Objects }}
  {{ printf "%-10s" .Entry }} {{ printf "%-8s" .Component }} {{ .Name }}
{{- end }}
`

var infoTmpl = template.Must(
	template.New("info").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{
			"title":  func(s string) string { return tui.TitleStyle.Render(s) },
			"header": func(s string) string { return tui.HeaderStyle.Render(s) },
			"key":    func(s string) string { return tui.KeyStyle.Render(s) },
			"subtle": func(s string) string { return tui.SubtleStyle.Render(s) },
		}).
		Parse(infoTemplate),
)

// RenderInfo renders the human readable project summary
func RenderInfo(view *InfoView) (string, error) {
	var buf bytes.Buffer
	if err := infoTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render project info: %w", err)
	}
	return buf.String(), nil
}
