// Package hosts reconciles the system hosts file against the declared
// domain set. It owns only lines carrying the vidos signature comment;
// every other line is foreign and passed through untouched on rewrite.
package hosts

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/daymxn/vidos/internal/config"
	vderrors "github.com/daymxn/vidos/internal/errors"
	"github.com/daymxn/vidos/internal/store"
)

// Signature is the trailing comment marking a hosts line as vidos-managed.
const Signature = "vidos"

// maxBackups bounds the number of hosts file backups kept.
const maxBackups = 10

// managedLine matches "<ip> <hostname> # <comment>"; a line is managed iff
// the comment equals the signature (case-insensitive).
var managedLine = regexp.MustCompile(`^\s*(\S+)\s+(\S+)\s*#\s*(\S+)\s*$`)

// Entry is one managed hosts file line: an address and a hostname.
type Entry struct {
	IP   string
	Name string
}

// EntryFor derives the hosts entry for a domain by stripping the port from
// its destination.
func EntryFor(d *config.Domain) Entry {
	return Entry{IP: d.HostAddress(), Name: d.Source}
}

// Line renders the entry as a signature-tagged hosts file line.
func (e Entry) Line() string {
	return fmt.Sprintf("%s %s # %s", e.IP, e.Name, Signature)
}

// Diff reports the entries a reconcile run added and removed. An empty diff
// means the file already matched the declared state.
type Diff struct {
	Added   []Entry
	Removed []Entry
}

// Empty reports whether the reconcile was a no-op.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Reconciler keeps the hosts file's managed lines equal to the set of
// active domains.
type Reconciler struct {
	fs        store.FileStore
	path      string
	backupDir string // empty disables backups
}

// NewReconciler creates a reconciler for the hosts file at path. When
// backupDir is non-empty a timestamped copy of the file is written there
// before every rewrite.
func NewReconciler(fs store.FileStore, path, backupDir string) *Reconciler {
	return &Reconciler{fs: fs, path: path, backupDir: backupDir}
}

// parseManaged extracts the managed entry from a line, if the line carries
// the signature comment.
func parseManaged(line string) (Entry, bool) {
	if strings.HasPrefix(strings.TrimSpace(line), "#") {
		return Entry{}, false
	}
	m := managedLine.FindStringSubmatch(line)
	if m == nil || !strings.EqualFold(m[3], Signature) {
		return Entry{}, false
	}
	return Entry{IP: m[1], Name: m[2]}, true
}

// Entries returns every managed entry currently in the file.
func (r *Reconciler) Entries() ([]Entry, error) {
	lines, err := r.fs.ReadLines(r.path)
	if err != nil {
		return nil, vderrors.IO("read hosts file", err)
	}

	var entries []Entry
	for _, line := range lines {
		if e, ok := parseManaged(line); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Exists reports whether a managed entry with the same ip and name is
// already present.
func (r *Reconciler) Exists(entry Entry) (bool, error) {
	entries, err := r.Entries()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e == entry {
			return true, nil
		}
	}
	return false, nil
}

// Add appends one managed line. Returns false without touching the file if
// a matching entry already exists.
func (r *Reconciler) Add(entry Entry) (bool, error) {
	exists, err := r.Exists(entry)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	content, err := r.fs.ReadText(r.path)
	if err != nil {
		return false, vderrors.IO("read hosts file", err)
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry.Line() + "\n"

	if err := r.fs.WriteText(r.path, content); err != nil {
		return false, vderrors.IO("append hosts entry", err)
	}
	return true, nil
}

// Remove rewrites the file with every line whose managed entry equals the
// target dropped. Returns false without touching the file if no matching
// managed entry exists. Foreign lines are never removed.
func (r *Reconciler) Remove(entry Entry) (bool, error) {
	lines, err := r.fs.ReadLines(r.path)
	if err != nil {
		return false, vderrors.IO("read hosts file", err)
	}

	kept := make([]string, 0, len(lines))
	removed := false
	for _, line := range lines {
		if e, ok := parseManaged(line); ok && e == entry {
			removed = true
			continue
		}
		kept = append(kept, line)
	}

	if !removed {
		return false, nil
	}

	if err := r.rewrite(kept); err != nil {
		return false, err
	}
	return true, nil
}

// Reconcile makes the managed lines exactly equal to the entries derived
// from the active domains, in a single file rewrite. It returns the applied
// diff; calling it again immediately always yields an empty diff.
func (r *Reconciler) Reconcile(domains []*config.Domain) (Diff, error) {
	desired := make(map[Entry]bool)
	for _, d := range domains {
		if d.Active() {
			desired[EntryFor(d)] = true
		}
	}

	lines, err := r.fs.ReadLines(r.path)
	if err != nil {
		return Diff{}, vderrors.IO("read hosts file", err)
	}

	current := make(map[Entry]bool)
	kept := make([]string, 0, len(lines))
	var diff Diff

	for _, line := range lines {
		e, ok := parseManaged(line)
		if !ok {
			kept = append(kept, line)
			continue
		}
		if !desired[e] {
			diff.Removed = append(diff.Removed, e)
			continue
		}
		if current[e] {
			// Duplicate managed line; keep a single copy.
			continue
		}
		current[e] = true
		kept = append(kept, line)
	}

	for e := range desired {
		if !current[e] {
			diff.Added = append(diff.Added, e)
			kept = append(kept, e.Line())
		}
	}

	if diff.Empty() {
		return diff, nil
	}

	sort.Slice(diff.Added, func(i, j int) bool { return diff.Added[i].Name < diff.Added[j].Name })
	sort.Slice(diff.Removed, func(i, j int) bool { return diff.Removed[i].Name < diff.Removed[j].Name })

	if err := r.rewrite(kept); err != nil {
		return Diff{}, err
	}
	return diff, nil
}

// rewrite overwrites the hosts file in one operation, taking a backup first
// when backups are enabled.
func (r *Reconciler) rewrite(lines []string) error {
	if err := r.backup(); err != nil {
		return err
	}
	if err := r.fs.WriteLines(r.path, lines); err != nil {
		return vderrors.IO("rewrite hosts file", err)
	}
	return nil
}

// backup copies the current hosts file into the backup directory and prunes
// old copies.
func (r *Reconciler) backup() error {
	if r.backupDir == "" {
		return nil
	}

	content, err := r.fs.ReadText(r.path)
	if err != nil {
		return vderrors.IO("read hosts file for backup", err)
	}
	if err := r.fs.EnsureDir(r.backupDir); err != nil {
		return vderrors.IO("create backup directory", err)
	}

	name := fmt.Sprintf("hosts.%s.bak", time.Now().Format("20060102-150405.000"))
	if err := r.fs.WriteText(filepath.Join(r.backupDir, name), content); err != nil {
		return vderrors.IO("write hosts backup", err)
	}

	r.pruneBackups()
	return nil
}

// pruneBackups drops the oldest backups beyond maxBackups. Failures here
// never fail the rewrite.
func (r *Reconciler) pruneBackups() {
	names, err := r.fs.ListDir(r.backupDir)
	if err != nil {
		return
	}

	var backups []string
	for _, name := range names {
		if strings.HasPrefix(name, "hosts.") && strings.HasSuffix(name, ".bak") {
			backups = append(backups, name)
		}
	}
	if len(backups) <= maxBackups {
		return
	}

	// Timestamped names sort chronologically.
	sort.Strings(backups)
	for _, name := range backups[:len(backups)-maxBackups] {
		_ = r.fs.Delete(filepath.Join(r.backupDir, name))
	}
}
