package hosts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daymxn/vidos/internal/config"
	"github.com/daymxn/vidos/internal/store"
)

const foreignContent = `127.0.0.1 localhost
::1 localhost
# A hand-written comment
192.168.1.50 nas.local # my nas
`

func newTestReconciler(t *testing.T, content string) (*Reconciler, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return NewReconciler(store.NewDiskStore(), path, ""), path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func mustDomain(t *testing.T, source, destination string) *config.Domain {
	t.Helper()
	d, err := config.NewDomain(source, destination)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestParseManaged(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Entry
		managed bool
	}{
		{"managed line", "127.0.0.1 api.example.com # vidos", Entry{"127.0.0.1", "api.example.com"}, true},
		{"managed with extra spacing", "  127.0.0.1   api.example.com  #  vidos  ", Entry{"127.0.0.1", "api.example.com"}, true},
		{"signature casing ignored", "127.0.0.1 api.example.com # VIDOS", Entry{"127.0.0.1", "api.example.com"}, true},
		{"plain entry is foreign", "127.0.0.1 localhost", Entry{}, false},
		{"other comment is foreign", "192.168.1.50 nas.local # my nas", Entry{}, false},
		{"comment line is foreign", "# 127.0.0.1 old.example.com # vidos", Entry{}, false},
		{"blank line", "", Entry{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, managed := parseManaged(tt.line)
			if managed != tt.managed {
				t.Fatalf("managed = %v, want %v", managed, tt.managed)
			}
			if managed && got != tt.want {
				t.Errorf("entry = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEntryFor(t *testing.T) {
	d := mustDomain(t, "api.example.com", "127.0.0.1:5001")
	e := EntryFor(d)
	if e.IP != "127.0.0.1" || e.Name != "api.example.com" {
		t.Errorf("EntryFor = %+v", e)
	}
	if e.Line() != "127.0.0.1 api.example.com # vidos" {
		t.Errorf("Line = %q", e.Line())
	}
}

func TestAdd(t *testing.T) {
	r, path := newTestReconciler(t, foreignContent)
	entry := Entry{IP: "127.0.0.1", Name: "api.example.com"}

	added, err := r.Add(entry)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !added {
		t.Error("first Add should return true")
	}
	if !strings.Contains(readFile(t, path), "127.0.0.1 api.example.com # vidos") {
		t.Error("managed line should be appended")
	}

	// Second add is a no-op.
	added, err = r.Add(entry)
	if err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	if added {
		t.Error("duplicate Add should return false")
	}
}

func TestAddToFileWithoutTrailingNewline(t *testing.T) {
	r, path := newTestReconciler(t, "127.0.0.1 localhost")

	if _, err := r.Add(Entry{IP: "127.0.0.1", Name: "api.example.com"}); err != nil {
		t.Fatal(err)
	}

	content := readFile(t, path)
	if strings.Contains(content, "localhost127.0.0.1") {
		t.Errorf("entry merged into previous line: %q", content)
	}
	if !strings.Contains(content, "127.0.0.1 localhost\n") {
		t.Errorf("foreign line damaged: %q", content)
	}
}

func TestRemove(t *testing.T) {
	r, path := newTestReconciler(t, foreignContent+"127.0.0.1 api.example.com # vidos\n")
	entry := Entry{IP: "127.0.0.1", Name: "api.example.com"}

	removed, err := r.Remove(entry)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !removed {
		t.Error("Remove of existing entry should return true")
	}
	if strings.Contains(readFile(t, path), "api.example.com") {
		t.Error("managed line should be gone")
	}

	removed, err = r.Remove(entry)
	if err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}
	if removed {
		t.Error("Remove of missing entry should return false")
	}
}

func TestForeignLinesPreserved(t *testing.T) {
	r, path := newTestReconciler(t, foreignContent)
	domains := []*config.Domain{
		mustDomain(t, "api.example.com", "127.0.0.1:5001"),
		mustDomain(t, "web.example.com", "127.0.0.1:3000"),
	}

	if _, err := r.Reconcile(domains); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Remove(EntryFor(domains[0])); err != nil {
		t.Fatal(err)
	}

	content := readFile(t, path)
	for _, foreign := range []string{
		"127.0.0.1 localhost",
		"::1 localhost",
		"# A hand-written comment",
		"192.168.1.50 nas.local # my nas",
	} {
		if !strings.Contains(content, foreign) {
			t.Errorf("foreign line %q not preserved:\n%s", foreign, content)
		}
	}
}

func TestReconcile(t *testing.T) {
	r, path := newTestReconciler(t, foreignContent+"127.0.0.1 stale.example.com # vidos\n")

	active := mustDomain(t, "api.example.com", "127.0.0.1:5001")
	inactive := mustDomain(t, "web.example.com", "127.0.0.1:3000")
	inactive.SetStatus(config.StatusInactive)

	diff, err := r.Reconcile([]*config.Domain{active, inactive})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if len(diff.Added) != 1 || diff.Added[0].Name != "api.example.com" {
		t.Errorf("added = %+v", diff.Added)
	}
	if len(diff.Removed) != 1 || diff.Removed[0].Name != "stale.example.com" {
		t.Errorf("removed = %+v", diff.Removed)
	}

	content := readFile(t, path)
	if !strings.Contains(content, "127.0.0.1 api.example.com # vidos") {
		t.Error("active domain line missing")
	}
	if strings.Contains(content, "stale.example.com") {
		t.Error("stale managed line should be removed")
	}
	if strings.Contains(content, "web.example.com") {
		t.Error("inactive domain must not get a hosts line")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	r, _ := newTestReconciler(t, foreignContent)
	domains := []*config.Domain{
		mustDomain(t, "api.example.com", "127.0.0.1:5001"),
		mustDomain(t, "web.example.com", "127.0.0.1:3000"),
	}

	first, err := r.Reconcile(domains)
	if err != nil {
		t.Fatal(err)
	}
	if first.Empty() {
		t.Fatal("first reconcile should apply changes")
	}

	second, err := r.Reconcile(domains)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Empty() {
		t.Errorf("second reconcile should be empty, got %+v", second)
	}
}

func TestReconcileCollapsesDuplicates(t *testing.T) {
	dup := "127.0.0.1 api.example.com # vidos\n"
	r, path := newTestReconciler(t, foreignContent+dup+dup)

	if _, err := r.Reconcile([]*config.Domain{mustDomain(t, "api.example.com", "127.0.0.1:5001")}); err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(readFile(t, path), "api.example.com"); got != 1 {
		t.Errorf("expected a single managed line, found %d", got)
	}
}

func TestReconcileDriftCorrection(t *testing.T) {
	// Manually deleted hosts line for an inactive domain: reconcile must not
	// re-add it.
	r, path := newTestReconciler(t, foreignContent)
	d := mustDomain(t, "api.example.com", "127.0.0.1:5001")
	d.SetStatus(config.StatusInactive)

	diff, err := r.Reconcile([]*config.Domain{d})
	if err != nil {
		t.Fatal(err)
	}
	if !diff.Empty() {
		t.Errorf("nothing should change for an inactive domain, got %+v", diff)
	}
	if strings.Contains(readFile(t, path), "api.example.com") {
		t.Error("inactive domain must stay absent")
	}
}

func TestBackupOnRewrite(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "hosts")
	backupDir := filepath.Join(tempDir, "backups")
	if err := os.WriteFile(path, []byte(foreignContent), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewReconciler(store.NewDiskStore(), path, backupDir)
	if _, err := r.Reconcile([]*config.Domain{mustDomain(t, "api.example.com", "127.0.0.1:5001")}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("backup directory missing: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected a backup file")
	}

	// Backup holds the pre-rewrite content.
	data, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != foreignContent {
		t.Error("backup should contain the original content")
	}
}
