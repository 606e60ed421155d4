// pkg/gen/manifest.go
package gen

import (
	"path/filepath"
	"regexp"

	"github.com/rte-toolkit/dpdkgen/pkg/library"
	"github.com/rte-toolkit/dpdkgen/pkg/tmpl"
)

// pmdPattern matches poll-mode-driver libraries and captures the driver
// suffix (rte_pmd_e1000 -> e1000).
var pmdPattern = regexp.MustCompile(`^rte_pmd_(\w+)$`)

// Drivers extracts the driver suffixes from the library set, in set order
func Drivers(libs library.Set) []string {
	var drivers []string
	for _, name := range libs.Names() {
		if m := pmdPattern.FindStringSubmatch(name); m != nil {
			drivers = append(drivers, m[1])
		}
	}
	return drivers
}

// RenderManifest renders the driver manifest: the template's %pmd_list%
// placeholder is replaced with the quoted, comma-terminated driver
// suffixes of every library matching the rte_pmd_<driver> convention.
func (e *Emitter) RenderManifest(libs library.Set) error {
	templatePath := filepath.Join(e.cfg.Output.TemplateDir, e.cfg.Output.ManifestFile+".template")
	doc, err := tmpl.Load(templatePath)
	if err != nil {
		return err
	}

	rendered := doc.Render(tmpl.PMDList, tmpl.QuotedList(Drivers(libs)))
	return tmpl.WriteFile(e.ManifestPath(), []byte(rendered))
}
