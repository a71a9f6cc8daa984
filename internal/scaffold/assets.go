package scaffold

import (
	"embed"
	"fmt"
)

// Boilerplate payloads written into generated projects. Kept as files so the
// kind builders stay readable; compiled into the binary.
//
//go:embed assets
var assetFS embed.FS

// asset returns the embedded payload at name (relative to assets/).
// Assets are embedded, so a missing one is a compile-time bug we want to
// know about; asset panics instead of returning an error.
func asset(name string) string {
	data, err := assetFS.ReadFile("assets/" + name)
	if err != nil {
		panic(fmt.Sprintf("missing embedded asset %s: %v", name, err))
	}
	return string(data)
}
