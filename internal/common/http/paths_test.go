package http_test

import (
	"testing"

	commonhttp "github.com/taskboard/backend/internal/common/http"
)

func TestExtractResourceID(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		prefix   string
		wantID   string
		wantRest string
		wantOK   bool
	}{
		{"plain id", "/api/boards/b1", "/api/boards/", "b1", "", true},
		{"id with subresource", "/api/boards/b1/tasks", "/api/boards/", "b1", "/tasks", true},
		{"empty id", "/api/boards/", "/api/boards/", "", "", false},
		{"empty id with subresource", "/api/boards//tasks", "/api/boards/", "", "", false},
		{"wrong prefix", "/api/tasks/t1", "/api/boards/", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, rest, ok := commonhttp.ExtractResourceID(tc.path, tc.prefix)
			if id != tc.wantID || rest != tc.wantRest || ok != tc.wantOK {
				t.Errorf("got (%q, %q, %v), want (%q, %q, %v)", id, rest, ok, tc.wantID, tc.wantRest, tc.wantOK)
			}
		})
	}
}
