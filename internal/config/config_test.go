package config

import (
	"os"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/viscabridge.yml")
	if err != nil {
		t.Fatalf("expected missing config file to be non-fatal, got %v", err)
	}
	if cfg.ViscaSerial.Enabled {
		t.Fatal("expected serial disabled by default")
	}
	if cfg.ViscaServer.HTTPPort != 8080 {
		t.Fatalf("expected default http port 8080, got %d", cfg.ViscaServer.HTTPPort)
	}
	if !cfg.Discovery.Enabled {
		t.Fatal("expected discovery enabled by default")
	}
}

func TestLoadOverlaysYAMLOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/viscabridge.yml"
	data := []byte("viscaServer:\n  http_port: 9090\nviscaIPCameras:\n  - address: 1\n    addr: 192.168.1.30:52381\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ViscaServer.HTTPPort != 9090 {
		t.Fatalf("expected overlay to set http_port to 9090, got %d", cfg.ViscaServer.HTTPPort)
	}
	if cfg.ViscaServer.HTTPHost != "0.0.0.0" {
		t.Fatalf("expected untouched default host to survive overlay, got %q", cfg.ViscaServer.HTTPHost)
	}
	if len(cfg.ViscaIPCameras) != 1 || cfg.ViscaIPCameras[0].Addr != "192.168.1.30:52381" {
		t.Fatalf("unexpected ip cameras: %+v", cfg.ViscaIPCameras)
	}
}
