package service

import (
	"PriVault/model"
	"strings"
)

// FilterFiles returns the files whose name or description contains query,
// case-insensitively, preserving order. An empty query returns files
// unchanged. Pure function of its inputs.
func FilterFiles(files []model.VaultFile, query string) []model.VaultFile {
	if query == "" {
		return files
	}
	needle := strings.ToLower(query)
	out := make([]model.VaultFile, 0, len(files))
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.Name), needle) ||
			strings.Contains(strings.ToLower(f.Description), needle) {
			out = append(out, f)
		}
	}
	return out
}
