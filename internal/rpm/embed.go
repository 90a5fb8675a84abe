package rpm

import (
	"embed"
	"fmt"
)

// Built-in spec templates, one per supported distribution. A project can
// override them with the template_path config key.
//
//go:embed templates/*.spec.tmpl
var templatesFS embed.FS

// DefaultTemplate returns the built-in spec template for a distribution.
func DefaultTemplate(distro string) ([]byte, error) {
	content, err := templatesFS.ReadFile(fmt.Sprintf("templates/%s.spec.tmpl", distro))
	if err != nil {
		return nil, fmt.Errorf("no built-in spec template for distribution %q", distro)
	}
	return content, nil
}
