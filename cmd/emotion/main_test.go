package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/samvad-hq/emotion-sdk/internal/credentials"
)

func openManager(t *testing.T, path string) *credentials.Manager {
	t.Helper()
	store, err := credentials.NewStore("file", path, "emotion-sdk-test")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	mgr := credentials.NewManager(store, nil)
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func TestSaveKeyKeepsUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subscription.txt")

	if err := saveKey(openManager(t, path), []string{"--key", "secret"}); err != nil {
		t.Fatalf("save key: %v", err)
	}
	if err := saveKey(openManager(t, path), []string{"--endpoint", "https://eastus.example.com/face/v1.0"}); err != nil {
		t.Fatalf("save endpoint: %v", err)
	}

	mgr := openManager(t, path)
	if got := mgr.SubscriptionKey(); got != "secret" {
		t.Fatalf("key was overwritten, got %q", got)
	}
	if got := mgr.Endpoint(); got != "https://eastus.example.com/face/v1.0" {
		t.Fatalf("unexpected endpoint %q", got)
	}

	if err := saveKey(openManager(t, path), []string{"--endpoint", ""}); err != nil {
		t.Fatalf("clear endpoint: %v", err)
	}
	mgr = openManager(t, path)
	if mgr.SubscriptionKey() != "secret" || mgr.Endpoint() != credentials.EndpointPlaceholder {
		t.Fatalf("explicit empty endpoint should clear only the endpoint, got %q / %q", mgr.SubscriptionKey(), mgr.Endpoint())
	}
}

func TestSaveKeyRequiresAFlag(t *testing.T) {
	err := saveKey(openManager(t, filepath.Join(t.TempDir(), "subscription.txt")), nil)
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
