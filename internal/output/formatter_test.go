package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(os.Stdout)
	fn()
	return buf.String()
}

func TestJSON(t *testing.T) {
	got := captureOutput(t, func() {
		if err := JSON(map[string]interface{}{"domain": "api.example.com", "success": true}); err != nil {
			t.Fatalf("JSON failed: %v", err)
		}
	})

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["domain"] != "api.example.com" {
		t.Errorf("domain = %v, want api.example.com", decoded["domain"])
	}
}

func TestTable(t *testing.T) {
	got := captureOutput(t, func() {
		Table(
			[]string{"SOURCE", "DESTINATION", "STATUS"},
			[][]string{
				{"api.example.com", "127.0.0.1:5001", "active"},
				{"web.example.com", "127.0.0.1:3000", "inactive"},
			},
		)
	})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header, separator, 2 rows), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "SOURCE") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "api.example.com") {
		t.Errorf("first row = %q", lines[2])
	}

	// Columns align: every line has the same prefix width up to column two.
	col := strings.Index(lines[0], "DESTINATION")
	if !strings.HasPrefix(lines[2][col:], "127.0.0.1:5001") {
		t.Errorf("destination column misaligned: %q", lines[2])
	}
}

func TestTableEmptyHeaders(t *testing.T) {
	got := captureOutput(t, func() {
		Table(nil, nil)
	})
	if got != "" {
		t.Errorf("empty table should print nothing, got %q", got)
	}
}

func TestStatusMessages(t *testing.T) {
	tests := []struct {
		name   string
		fn     func()
		marker string
	}{
		{"success", func() { Success("domain %s created", "api.example.com") }, "✓"},
		{"error", func() { Error("failed") }, "✗"},
		{"warn", func() { Warn("drift detected") }, "!"},
		{"info", func() { Info("reconciling") }, "→"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := captureOutput(t, tt.fn)
			if !strings.Contains(got, tt.marker) {
				t.Errorf("output %q should contain marker %q", got, tt.marker)
			}
		})
	}
}
