// Package loader serves the bundled example programs: a fixed set of
// named turtle-DSL sources embedded into the binary, used by the TUI's
// "load <name>" command and the GUI's example picker.
package loader

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed examples/*.logo
var assets embed.FS

const examplesDir = "examples"

// Names returns the bundled example names in sorted order, with the
// .logo extension stripped.
func Names() []string {
	entries, err := fs.ReadDir(assets, examplesDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".logo"))
	}
	sort.Strings(names)
	return names
}

// Load returns the source text of the named bundled example.
func Load(name string) (string, error) {
	data, err := assets.ReadFile(examplesDir + "/" + name + ".logo")
	if err != nil {
		return "", fmt.Errorf("no such example %q", name)
	}
	return string(data), nil
}
