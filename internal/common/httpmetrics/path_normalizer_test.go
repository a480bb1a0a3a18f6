package httpmetrics_test

import (
	"testing"

	"github.com/taskboard/backend/internal/common/httpmetrics"
)

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"/api/boards", "/api/boards"},
		{"/api/boards/b1", "/api/boards/:id"},
		{"/api/boards/b1/tasks", "/api/boards/:id/tasks"},
		{"/api/tasks/t1", "/api/tasks/:id"},
		{"/api/auth/login", "/api/auth/login"},
		{"/health", "/health"},
	}

	for _, tc := range testCases {
		if got := httpmetrics.NormalizePath(tc.path); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
