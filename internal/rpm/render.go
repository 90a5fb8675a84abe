package rpm

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
)

// RenderSpec renders an RPM spec template with the assembled substitutions.
// Templates use Go text/template syntax with {{.FieldName}} placeholders.
func RenderSpec(content []byte, subs *Substitutions) ([]byte, error) {
	if subs == nil {
		return nil, fmt.Errorf("substitutions are nil")
	}

	tmpl, err := template.New("spec").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing spec template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, subs); err != nil {
		return nil, fmt.Errorf("executing spec template: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderSpecFile loads a template from disk and renders it.
func RenderSpecFile(path string, subs *Substitutions) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec template: %w", err)
	}
	return RenderSpec(content, subs)
}
