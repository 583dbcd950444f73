package intenttext

import (
	"path/filepath"
	"strings"
)

// ResolveOutputPath determines the HTML output path for an IntentText
// source path: the source extension is swapped for .html.
func ResolveOutputPath(itPath string) string {
	return strings.TrimSuffix(itPath, filepath.Ext(itPath)) + ".html"
}

func MustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		panic(err)
	}
	return abs
}
