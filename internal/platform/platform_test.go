package platform

import (
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		goos       string
		family     Family
		binary     string
		archiveExt string
	}{
		{"linux", FamilyUnix, "nginx", ".tar.gz"},
		{"darwin", FamilyUnix, "nginx", ".tar.gz"},
		{"windows", FamilyWindows, "nginx.exe", ".zip"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p, err := detect(tt.goos)
			if err != nil {
				t.Fatalf("detect(%s) failed: %v", tt.goos, err)
			}
			if p.Family != tt.family {
				t.Errorf("family = %s, want %s", p.Family, tt.family)
			}
			if p.BinaryName != tt.binary {
				t.Errorf("binary = %s, want %s", p.BinaryName, tt.binary)
			}
			if p.ArchiveExt != tt.archiveExt {
				t.Errorf("archive ext = %s, want %s", p.ArchiveExt, tt.archiveExt)
			}
			if p.HostsFile == "" {
				t.Error("hosts file path should not be empty")
			}
			if p.QueryProcesses.Name == "" || p.KillProcess.Name == "" {
				t.Error("process commands should be populated")
			}
		})
	}
}

func TestDetectUnsupported(t *testing.T) {
	if _, err := detect("plan9"); err == nil {
		t.Error("expected error for unsupported platform")
	}
}

func TestBinaryPath(t *testing.T) {
	p, err := detect("linux")
	if err != nil {
		t.Fatal(err)
	}

	got := p.BinaryPath(filepath.Join("opt", "vidos", "nginx"))
	want := filepath.Join("opt", "vidos", "nginx", "nginx")
	if got != want {
		t.Errorf("BinaryPath = %s, want %s", got, want)
	}
}

func TestDetectCurrentPlatform(t *testing.T) {
	p, err := Detect()
	if err != nil {
		t.Skipf("current platform unsupported: %v", err)
	}

	installPath, err := p.DefaultInstallPath()
	if err != nil {
		t.Fatalf("DefaultInstallPath failed: %v", err)
	}
	if installPath == "" {
		t.Error("install path should not be empty")
	}
}
