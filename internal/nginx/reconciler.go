// Package nginx maintains the per-domain reverse-proxy configuration files
// and the nginx process itself. Each declared domain owns exactly one file
// in the managed directory; a domain's enabled state is encoded
// structurally by comment-prefixing every line of its file.
package nginx

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/daymxn/vidos/internal/config"
	vderrors "github.com/daymxn/vidos/internal/errors"
	"github.com/daymxn/vidos/internal/store"
	"github.com/daymxn/vidos/internal/template"
)

// CommonSettingsFile is the fixed name of the shared settings file inside
// the managed directory.
const CommonSettingsFile = "common.conf"

// commentMarker prefixes every line of a disabled domain file.
const commentMarker = "#"

// Diff is the always-rich result of a directory reconcile: files created,
// orphans deleted, and domains whose structural enabled state was forced to
// match their declared status.
type Diff struct {
	AddedFiles   []string
	RemovedFiles []string
	StatusFlips  []string
}

// Empty reports whether the reconcile was a no-op.
func (d Diff) Empty() bool {
	return len(d.AddedFiles) == 0 && len(d.RemovedFiles) == 0 && len(d.StatusFlips) == 0
}

// Reconciler manages the per-domain config files under
// <installPath>/conf/<aliasDir>/ and the include line in the main nginx
// config.
type Reconciler struct {
	fs          store.FileStore
	installPath string
	aliasDir    string
}

// NewReconciler creates a reconciler for the nginx install at installPath.
// aliasDir is the name of the managed directory under conf/.
func NewReconciler(fs store.FileStore, installPath, aliasDir string) *Reconciler {
	return &Reconciler{fs: fs, installPath: installPath, aliasDir: aliasDir}
}

// ManagedDir returns the managed configuration directory.
func (r *Reconciler) ManagedDir() string {
	return filepath.Join(r.installPath, "conf", r.aliasDir)
}

// MainConfigPath returns the path of the main nginx configuration file.
func (r *Reconciler) MainConfigPath() string {
	return filepath.Join(r.installPath, "conf", "nginx.conf")
}

// CommonSettingsPath returns the path of the shared settings file.
func (r *Reconciler) CommonSettingsPath() string {
	return filepath.Join(r.ManagedDir(), CommonSettingsFile)
}

// DomainFilePath returns the config file path for a domain.
func (r *Reconciler) DomainFilePath(d *config.Domain) string {
	return filepath.Join(r.ManagedDir(), d.ConfigFileName())
}

// Exists reports whether the domain's config file is present.
func (r *Reconciler) Exists(d *config.Domain) bool {
	return r.fs.Exists(r.DomainFilePath(d))
}

// AddDomain writes the generated server block for a domain. Returns false
// without touching anything if the file already exists, so hand-edited
// content is never overwritten.
func (r *Reconciler) AddDomain(d *config.Domain) (bool, error) {
	if r.Exists(d) {
		return false, nil
	}

	if err := r.fs.EnsureDir(r.ManagedDir()); err != nil {
		return false, vderrors.IO("create managed directory", err)
	}

	block, err := template.ServerBlock(d, r.CommonSettingsPath())
	if err != nil {
		return false, vderrors.WrapDomain(vderrors.ErrCodeInternal, d.Source, err)
	}

	if err := r.fs.WriteText(r.DomainFilePath(d), block); err != nil {
		return false, vderrors.IO("write domain config", err)
	}
	return true, nil
}

// RemoveDomain deletes the domain's config file. Returns false if no file
// exists.
func (r *Reconciler) RemoveDomain(d *config.Domain) (bool, error) {
	if !r.Exists(d) {
		return false, nil
	}
	if err := r.fs.Delete(r.DomainFilePath(d)); err != nil {
		return false, vderrors.IO("delete domain config", err)
	}
	return true, nil
}

// fullyCommented reports whether every line carries the comment marker.
// An empty file is neither enabled nor disabled.
func fullyCommented(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, commentMarker) {
			return false
		}
	}
	return true
}

// DisableDomain comment-prefixes every line of the domain's file. Returns
// false if the file is already fully commented. A file with a mix of
// commented and uncommented lines is treated as not disabled and gets
// fully commented.
func (r *Reconciler) DisableDomain(d *config.Domain) (bool, error) {
	lines, err := r.fs.ReadLines(r.DomainFilePath(d))
	if err != nil {
		return false, vderrors.IO("read domain config", err)
	}

	if fullyCommented(lines) {
		return false, nil
	}

	commented := make([]string, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, commentMarker) {
			commented[i] = line
			continue
		}
		commented[i] = commentMarker + line
	}

	if err := r.fs.WriteLines(r.DomainFilePath(d), commented); err != nil {
		return false, vderrors.IO("disable domain config", err)
	}
	return true, nil
}

// EnableDomain strips exactly one leading marker from every line of the
// domain's file. Returns false if the file is not fully commented, i.e.
// already enabled or in a mixed state; reconciliation normalizes mixed
// files.
func (r *Reconciler) EnableDomain(d *config.Domain) (bool, error) {
	lines, err := r.fs.ReadLines(r.DomainFilePath(d))
	if err != nil {
		return false, vderrors.IO("read domain config", err)
	}

	if !fullyCommented(lines) {
		return false, nil
	}

	uncommented := make([]string, len(lines))
	for i, line := range lines {
		uncommented[i] = strings.TrimPrefix(line, commentMarker)
	}

	if err := r.fs.WriteLines(r.DomainFilePath(d), uncommented); err != nil {
		return false, vderrors.IO("enable domain config", err)
	}
	return true, nil
}

// forceState normalizes the file's structural state to match enabled,
// regardless of any mixed comment state left by hand edits: all leading
// markers are stripped from every line, then every line is re-prefixed when
// the domain is inactive. Returns whether the content changed.
func (r *Reconciler) forceState(d *config.Domain, enabled bool) (bool, error) {
	path := r.DomainFilePath(d)
	lines, err := r.fs.ReadLines(path)
	if err != nil {
		return false, vderrors.IO("read domain config", err)
	}

	normalized := make([]string, len(lines))
	for i, line := range lines {
		stripped := strings.TrimLeft(line, commentMarker)
		if enabled {
			normalized[i] = stripped
		} else {
			normalized[i] = commentMarker + stripped
		}
	}

	changed := false
	for i := range lines {
		if lines[i] != normalized[i] {
			changed = true
			break
		}
	}
	if !changed {
		return false, nil
	}

	if err := r.fs.WriteLines(path, normalized); err != nil {
		return false, vderrors.IO("normalize domain config", err)
	}
	return true, nil
}

// EnsureCommonSettings writes the shared settings file if absent. Returns
// false if it already existed.
func (r *Reconciler) EnsureCommonSettings() (bool, error) {
	if r.fs.Exists(r.CommonSettingsPath()) {
		return false, nil
	}

	if err := r.fs.EnsureDir(r.ManagedDir()); err != nil {
		return false, vderrors.IO("create managed directory", err)
	}

	content, err := template.CommonSettings()
	if err != nil {
		return false, vderrors.Wrap(vderrors.ErrCodeInternal, "render common settings", err)
	}

	if err := r.fs.WriteText(r.CommonSettingsPath(), content); err != nil {
		return false, vderrors.IO("write common settings", err)
	}
	return true, nil
}

// ListManaged returns the managed directory's file names, excluding the
// common settings file. A missing directory lists as empty.
func (r *Reconciler) ListManaged() ([]string, error) {
	if !r.fs.Exists(r.ManagedDir()) {
		return nil, nil
	}
	names, err := r.fs.ListDir(r.ManagedDir(), CommonSettingsFile)
	if err != nil {
		return nil, vderrors.IO("list managed directory", err)
	}
	return names, nil
}

// includeLine is the line Link inserts into the main nginx config.
func (r *Reconciler) includeLine() string {
	return fmt.Sprintf("include %s/*.conf;", r.aliasDir)
}

// Linked reports whether the main config already includes the managed
// directory.
func (r *Reconciler) Linked() (bool, error) {
	lines, err := r.fs.ReadLines(r.MainConfigPath())
	if err != nil {
		return false, vderrors.IO("read main nginx config", err)
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == r.includeLine() {
			return true, nil
		}
	}
	return false, nil
}

// Link inserts the managed directory include inside the main config's http
// block. Returns false if the include is already present.
func (r *Reconciler) Link() (bool, error) {
	lines, err := r.fs.ReadLines(r.MainConfigPath())
	if err != nil {
		return false, vderrors.IO("read main nginx config", err)
	}

	include := r.includeLine()
	for _, line := range lines {
		if strings.TrimSpace(line) == include {
			return false, nil
		}
	}

	inserted := false
	updated := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		updated = append(updated, line)
		trimmed := strings.TrimSpace(line)
		if !inserted && (trimmed == "http {" || strings.HasSuffix(trimmed, " http {")) {
			updated = append(updated, "    "+include)
			inserted = true
		}
	}

	if !inserted {
		return false, vderrors.Wrap(vderrors.ErrCodeConfig, "main nginx config has no http block", nil)
	}

	if err := r.fs.WriteLines(r.MainConfigPath(), updated); err != nil {
		return false, vderrors.IO("link managed directory", err)
	}
	return true, nil
}

// Unlink removes the managed directory include from the main config.
// Returns false if the include is not present.
func (r *Reconciler) Unlink() (bool, error) {
	lines, err := r.fs.ReadLines(r.MainConfigPath())
	if err != nil {
		return false, vderrors.IO("read main nginx config", err)
	}

	include := r.includeLine()
	kept := make([]string, 0, len(lines))
	removed := false
	for _, line := range lines {
		if strings.TrimSpace(line) == include {
			removed = true
			continue
		}
		kept = append(kept, line)
	}

	if !removed {
		return false, nil
	}

	if err := r.fs.WriteLines(r.MainConfigPath(), kept); err != nil {
		return false, vderrors.IO("unlink managed directory", err)
	}
	return true, nil
}

// Reconcile converges the managed directory with the declared domain set:
// the common settings file exists, every domain has a config file, orphan
// files are deleted, and each file's structural state matches its domain's
// declared status. Per-domain status normalization fans out concurrently
// and joins before the diff is returned.
func (r *Reconciler) Reconcile(domains []*config.Domain) (Diff, error) {
	var diff Diff

	if _, err := r.EnsureCommonSettings(); err != nil {
		return diff, err
	}

	known := make(map[string]bool, len(domains))
	for _, d := range domains {
		known[d.ConfigFileName()] = true
		created, err := r.AddDomain(d)
		if err != nil {
			return diff, err
		}
		if created {
			diff.AddedFiles = append(diff.AddedFiles, d.ConfigFileName())
		}
	}

	names, err := r.ListManaged()
	if err != nil {
		return diff, err
	}
	for _, name := range names {
		if known[name] {
			continue
		}
		if err := r.fs.Delete(filepath.Join(r.ManagedDir(), name)); err != nil {
			return diff, vderrors.IO("delete orphan file", err)
		}
		diff.RemovedFiles = append(diff.RemovedFiles, name)
	}

	var (
		mu    sync.Mutex
		group errgroup.Group
	)
	for _, d := range domains {
		d := d
		group.Go(func() error {
			changed, err := r.forceState(d, d.Active())
			if err != nil {
				return err
			}
			if changed {
				mu.Lock()
				diff.StatusFlips = append(diff.StatusFlips, d.Source)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return diff, err
	}

	sort.Strings(diff.AddedFiles)
	sort.Strings(diff.RemovedFiles)
	sort.Strings(diff.StatusFlips)
	return diff, nil
}
