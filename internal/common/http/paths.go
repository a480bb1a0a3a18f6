package http

import "strings"

// ExtractResourceID splits a path like "/api/boards/<id>/tasks" by the given
// prefix into the id segment and the remainder ("/tasks" above, "" when the
// id is the last segment).
func ExtractResourceID(path, prefix string) (string, string, bool) {
	if !strings.HasPrefix(path, prefix) {
		return "", "", false
	}

	remaining := strings.TrimPrefix(path, prefix)
	if remaining == "" {
		return "", "", false
	}

	if idx := strings.Index(remaining, "/"); idx != -1 {
		id := remaining[:idx]
		if id == "" {
			return "", "", false
		}
		return id, remaining[idx:], true
	}

	return remaining, "", true
}
