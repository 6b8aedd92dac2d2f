// Package templates provides embedded starter pages.
//
// The pages (blank.yaml, welcome.yaml) are embedded at compile time and
// exposed via [Files] for `pagecells new`.
package templates

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
)

//go:embed *.yaml
var pageFS embed.FS

// Default is the template used when none is named.
const Default = "welcome"

// Files returns the embedded pages as a map of template name to content.
// Names are bare, without the .yaml extension.
func Files() map[string][]byte {
	entries, err := pageFS.ReadDir(".")
	if err != nil {
		return nil
	}
	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := pageFS.ReadFile(e.Name())
		if err != nil {
			continue
		}
		out[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = data
	}
	return out
}

// Names returns the template names, sorted.
func Names() []string {
	var names []string
	for name := range Files() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns one template.
func Get(name string) ([]byte, error) {
	data, ok := Files()[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return data, nil
}
