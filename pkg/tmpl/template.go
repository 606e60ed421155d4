// pkg/tmpl/template.go

// Package tmpl implements the minimal templating used for generated
// artifacts: a template is a static text blob with named placeholder
// tokens, and substitution is a single-pass literal replacement. There is
// no recursive expansion and no escaping of the substituted text.
//
// Each template file carries exactly one placeholder:
//
//	dpdk.h.template  %header_list%
//	link.rs.template %library_list%
//	pmds.rs.template %pmd_list%
package tmpl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rte-toolkit/dpdkgen/pkg/core"
)

// Placeholder tokens recognized in template files.
const (
	HeaderList  = "%header_list%"
	LibraryList = "%library_list%"
	PMDList     = "%pmd_list%"
)

// Document is a loaded template
type Document struct {
	Path string
	Text string
}

// Load reads a template file. A missing file is reported as
// core.ErrTemplateMissing.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &core.Error{Op: "load template", Path: path, Err: core.ErrTemplateMissing}
		}
		return nil, &core.Error{Op: "load template", Path: path, Err: err}
	}
	return &Document{Path: path, Text: string(data)}, nil
}

// Render replaces every occurrence of the placeholder token with body and
// returns the result. All other template text is left unchanged.
func (d *Document) Render(placeholder, body string) string {
	return strings.ReplaceAll(d.Text, placeholder, body)
}

// QuotedList formats names as a quoted, comma-terminated list, one entry
// per line:
//
//	"a",
//	"b",
func QuotedList(names []string) string {
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%q,\n", name)
	}
	return b.String()
}

// IncludeList formats header basenames as include directives, one per
// line. Template-rendered umbrella headers use quoted includes so that
// siblings of the umbrella resolve first; flat umbrellas use angle
// brackets.
func IncludeList(names []string, quoted bool) string {
	var b strings.Builder
	for _, name := range names {
		if quoted {
			fmt.Fprintf(&b, "#include %q\n", name)
		} else {
			fmt.Fprintf(&b, "#include <%s>\n", name)
		}
	}
	return b.String()
}

// WriteFile writes data to path through a temporary file in the same
// directory followed by a rename, so a failed stage never leaves a
// partially written artifact behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &core.Error{Op: "write", Path: path, Err: fmt.Errorf("%w: %v", core.ErrWriteFailed, err)}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &core.Error{Op: "write", Path: path, Err: fmt.Errorf("%w: %v", core.ErrWriteFailed, err)}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &core.Error{Op: "write", Path: path, Err: fmt.Errorf("%w: %v", core.ErrWriteFailed, err)}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &core.Error{Op: "write", Path: path, Err: fmt.Errorf("%w: %v", core.ErrWriteFailed, err)}
	}
	return nil
}
