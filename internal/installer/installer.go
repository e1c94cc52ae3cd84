// Package installer downloads the nginx release archive and extracts it
// into the managed install path. It is only used by the init command; every
// other command assumes the install already exists.
package installer

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	vderrors "github.com/daymxn/vidos/internal/errors"
	"github.com/daymxn/vidos/internal/platform"
)

// downloadTimeout bounds the whole archive download.
const downloadTimeout = 5 * time.Minute

// Installer fetches and unpacks the proxy release artifact.
type Installer struct {
	client   *http.Client
	platform *platform.Platform
}

// New creates an installer for the given platform.
func New(p *platform.Platform) *Installer {
	return &Installer{
		client:   &http.Client{Timeout: downloadTimeout},
		platform: p,
	}
}

// NewWithClient creates an installer with a custom HTTP client (for testing).
func NewWithClient(p *platform.Platform, client *http.Client) *Installer {
	return &Installer{client: client, platform: p}
}

// Install downloads the archive at url and extracts it into installPath.
// The archive's single top-level directory is stripped so the binary lands
// directly under installPath.
func (i *Installer) Install(ctx context.Context, url, installPath string) error {
	data, err := i.download(ctx, url)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(installPath, 0755); err != nil {
		return vderrors.IO("create install directory", err)
	}

	switch i.platform.ArchiveExt {
	case ".zip":
		err = extractZip(data, installPath)
	default:
		err = extractTarGz(data, installPath)
	}
	if err != nil {
		return vderrors.IO("extract proxy archive", err)
	}
	return nil
}

func (i *Installer) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, vderrors.Network("proxy archive", err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, vderrors.Network("proxy archive", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, vderrors.Network("proxy archive", fmt.Errorf("unexpected status %s", resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, vderrors.Network("proxy archive", err)
	}
	return data, nil
}

// stripRoot drops the archive's top-level directory from a member path and
// rejects entries that would escape the destination.
func stripRoot(name string) (string, error) {
	name = filepath.ToSlash(name)
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	parts := strings.SplitN(name, "/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return "", nil // top-level directory itself
	}
	return filepath.FromSlash(parts[1]), nil
}

func extractZip(data []byte, dest string) error {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}

	for _, file := range reader.File {
		rel, err := stripRoot(file.Name)
		if err != nil {
			return err
		}
		if rel == "" {
			continue
		}

		target := filepath.Join(dest, rel)
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		src, err := file.Open()
		if err != nil {
			return err
		}
		if err := writeFile(target, src, file.Mode()); err != nil {
			src.Close()
			return err
		}
		src.Close()
	}
	return nil
}

func extractTarGz(data []byte, dest string) error {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer gz.Close()

	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		rel, err := stripRoot(header.Name)
		if err != nil {
			return err
		}
		if rel == "" {
			continue
		}

		target := filepath.Join(dest, rel)
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			if err := writeFile(target, reader, os.FileMode(header.Mode)); err != nil {
				return err
			}
		}
	}
}

func writeFile(target string, src io.Reader, mode os.FileMode) error {
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
