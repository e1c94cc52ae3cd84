package cli

import (
	"strings"
	"testing"

	"github.com/daymxn/vidos/internal/config"
	vderrors "github.com/daymxn/vidos/internal/errors"
)

const testConfName = "api.example.com-127.0.0.1$5001.conf"

func TestCreate(t *testing.T) {
	env := setupTestDeps(t)

	if err := runCreate(createCmd, []string{"api.example.com", "127.0.0.1:5001"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Declared config gains one active domain and was saved.
	d := env.loader.cfg.DomainByName("api.example.com")
	if d == nil {
		t.Fatal("domain should be declared")
	}
	if d.Status != config.StatusActive {
		t.Errorf("status = %s, want active", d.Status)
	}
	if env.loader.saveCalled == 0 {
		t.Error("config should be saved")
	}

	// Hosts file gains exactly one managed line.
	if !strings.Contains(env.readHosts(t), "127.0.0.1 api.example.com # vidos") {
		t.Error("hosts file missing managed line")
	}

	// Proxy file is generated and uncommented.
	content := env.readDomainFile(t, testConfName)
	if !strings.Contains(content, "proxy_pass http://127.0.0.1:5001;") {
		t.Errorf("proxy file missing proxy_pass:\n%s", content)
	}
	if strings.HasPrefix(content, "#") {
		t.Error("fresh proxy file should be enabled")
	}
}

func TestCreateDuplicate(t *testing.T) {
	setupTestDeps(t)

	if err := runCreate(createCmd, []string{"api.example.com", "127.0.0.1:5001"}); err != nil {
		t.Fatal(err)
	}
	err := runCreate(createCmd, []string{"api.example.com", "127.0.0.1:9999"})
	if !vderrors.Is(err, vderrors.ErrDomainExists) {
		t.Errorf("duplicate create should fail with ErrDomainExists, got %v", err)
	}
}

func TestCreateInvalidDestination(t *testing.T) {
	env := setupTestDeps(t)

	err := runCreate(createCmd, []string{"api.example.com", "not-a-destination"})
	if err == nil {
		t.Fatal("invalid destination should fail")
	}
	var domErr *vderrors.DomainError
	if !vderrors.As(err, &domErr) || domErr.Code != vderrors.ErrCodeValidation {
		t.Errorf("expected VALIDATION error, got %v", err)
	}
	// Nothing written anywhere.
	if strings.Contains(env.readHosts(t), "api.example.com") {
		t.Error("hosts file must stay untouched on validation failure")
	}
	if env.loader.saveCalled != 0 {
		t.Error("config must not be saved on validation failure")
	}
}

func TestCreatePreservesForeignHostsLines(t *testing.T) {
	env := setupTestDeps(t)

	if err := runCreate(createCmd, []string{"api.example.com", "127.0.0.1:5001"}); err != nil {
		t.Fatal(err)
	}

	content := env.readHosts(t)
	for _, foreign := range []string{"127.0.0.1 localhost", "# local machines", "192.168.1.50 nas.local # my nas"} {
		if !strings.Contains(content, foreign) {
			t.Errorf("foreign line %q lost", foreign)
		}
	}
}
