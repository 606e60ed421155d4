// pkg/header/render.go
package header

import (
	"github.com/rte-toolkit/dpdkgen/pkg/tmpl"
)

// Render writes the umbrella header to outPath, including every candidate
// that passed both selection tests.
//
// With templatePath empty the umbrella is a flat listing of
// "#include <name>" directives. Otherwise the template is loaded and its
// %header_list% placeholder replaced with quoted include directives, so
// that local wrapper headers shipped next to the template resolve first.
func (r *Resolver) Render(candidates []Candidate, outPath, templatePath string) error {
	selected := Selected(candidates)
	names := make([]string, len(selected))
	for i, c := range selected {
		names[i] = c.Name()
	}

	if templatePath == "" {
		body := tmpl.IncludeList(names, false)
		return tmpl.WriteFile(outPath, []byte(body))
	}

	doc, err := tmpl.Load(templatePath)
	if err != nil {
		return err
	}
	rendered := doc.Render(tmpl.HeaderList, tmpl.IncludeList(names, true))
	return tmpl.WriteFile(outPath, []byte(rendered))
}
