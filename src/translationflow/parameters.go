package translationflow

import (
	"bytes"
	"fmt"
	"text/template"
)

const parametersTmpl = `Parameters:
    - TARGET-LANGUAGE: {{.TargetLanguage}}
    - AUTO-CORRECT: {{.AutoCorrect}}
    - AUTO-IMPROVE: {{.AutoImprove}}
`

var parametersT = template.Must(template.New("parameters").Parse(parametersTmpl))

// Parameters is sent with every batch next to the system instruction.
type Parameters struct {
	TargetLanguage string
	AutoCorrect    bool
	AutoImprove    bool
}

// Render returns the parameters block as sent to the translator.
func (p Parameters) Render() (string, error) {
	var buf bytes.Buffer
	if err := parametersT.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("failed to execute parameters template: %w", err)
	}
	return buf.String(), nil
}
