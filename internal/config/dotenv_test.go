package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv_NotExist(t *testing.T) {
	m, err := LoadDotEnv(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	body := "# comment\nA=1\nexport B = two \nC=\"/path with spaces\"\nnot a pair\n=orphan\n"
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadDotEnv(p)
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if m["A"] != "1" || m["B"] != "two" || m["C"] != "/path with spaces" {
		t.Fatalf("unexpected map: %v", m)
	}
	if len(m) != 3 {
		t.Fatalf("expected 3 entries, got %v", m)
	}
}

func TestGetConfigValue_EnvOverridesDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile(DotEnvPath, []byte("K=fromdotenv\nL=onlydotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("K", "fromenv")

	v, err := GetConfigValue("K")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "fromenv" {
		t.Fatalf("expected env override, got %q", v)
	}

	v, err = GetConfigValue("L")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "onlydotenv" {
		t.Fatalf("expected dotenv value, got %q", v)
	}
}
