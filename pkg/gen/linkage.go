// pkg/gen/linkage.go
package gen

import (
	"path/filepath"

	"github.com/rte-toolkit/dpdkgen/pkg/library"
	"github.com/rte-toolkit/dpdkgen/pkg/tmpl"
)

// RenderLinkage renders the build-linkage descriptor: the template's
// %library_list% placeholder is replaced with the quoted canonical
// library names, one per line, comma-terminated.
func (e *Emitter) RenderLinkage(libs library.Set) error {
	templatePath := filepath.Join(e.cfg.Output.TemplateDir, e.cfg.Output.LinkageFile+".template")
	doc, err := tmpl.Load(templatePath)
	if err != nil {
		return err
	}

	rendered := doc.Render(tmpl.LibraryList, tmpl.QuotedList(libs.Names()))
	return tmpl.WriteFile(e.LinkagePath(), []byte(rendered))
}
