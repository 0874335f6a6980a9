package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/Ayflow350/lexend-jobs/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestOpenAPICommandPrintsDocument(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "lexend.yaml")
	out, err := execute(t, "--config", cfgPath, "openapi", "--server-url", "https://jobs.example.com")
	if err != nil {
		t.Fatalf("openapi: %v", err)
	}
	var doc struct {
		OpenAPI string `json:"openapi"`
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if doc.OpenAPI != "3.0.3" {
		t.Fatalf("unexpected openapi version %q", doc.OpenAPI)
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "https://jobs.example.com" {
		t.Fatalf("unexpected servers %+v", doc.Servers)
	}
}

func TestOpenAPICommandWritesFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "openapi.json")
	out, err := execute(t, "--config", filepath.Join(dir, "lexend.yaml"), "openapi", "-o", target)
	if err != nil {
		t.Fatalf("openapi: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected confirmation, got %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !json.Valid(data) {
		t.Fatalf("document is not valid JSON")
	}
}

func TestInitCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "lexend.yaml")

	if _, err := execute(t, "--config", cfgPath, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Server.Addr != config.Default().Server.Addr {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}

	if _, err := execute(t, "--config", cfgPath, "init"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
	if _, err := execute(t, "--config", cfgPath, "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "lexend.yaml")
	if err := os.WriteFile(cfgPath, []byte("logging:\n  format: xml\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := execute(t, "--config", cfgPath, "openapi"); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	a := &app{cfg: cfg, logger: zap.NewNop()}

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, ready) }()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not start")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + addr + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	_ = resp.Body.Close()
	client.CloseIdleConnections()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}
