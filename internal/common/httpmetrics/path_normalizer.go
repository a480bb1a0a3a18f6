package httpmetrics

import "strings"

// NormalizePath collapses resource ids so metric label cardinality stays
// bounded.
func NormalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/boards/"):
		rest := strings.TrimPrefix(path, "/api/boards/")
		if strings.HasSuffix(rest, "/tasks") {
			return "/api/boards/:id/tasks"
		}
		return "/api/boards/:id"
	case strings.HasPrefix(path, "/api/tasks/"):
		return "/api/tasks/:id"
	default:
		return path
	}
}
