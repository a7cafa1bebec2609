package presets

import (
	"path/filepath"
	"strings"
)

// ForPath picks preset names for a file based on its extension. Every file
// gets URL detection; prose formats get Markdown first.
func ForPath(path string) []string {
	// Extensions of formats that are written as, or commonly embed, Markdown.
	markdownExts := map[string]bool{
		".md":       true,
		".markdown": true,
		".mdown":    true,
		".mkd":      true,
		".mdx":      true,
		".txt":      true,
		".text":     true,
	}

	ext := strings.ToLower(filepath.Ext(path))
	if markdownExts[ext] {
		return []string{"markdown", "url"}
	}

	// Check for specific filenames
	base := strings.ToLower(filepath.Base(path))
	switch base {
	case "readme", "changelog", "contributing", "license":
		return []string{"markdown", "url"}
	}

	return []string{"url"}
}
