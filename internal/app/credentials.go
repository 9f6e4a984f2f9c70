package app

import (
	"fmt"

	"github.com/samvad-hq/emotion-sdk/internal/config"
	"github.com/samvad-hq/emotion-sdk/internal/credentials"
	"github.com/samvad-hq/emotion-sdk/internal/logger"
)

// OpenCredentials opens the configured credential store and loads the saved
// subscription key and endpoint. The caller closes the returned manager.
func OpenCredentials(cfg *config.Config, log logger.Logger) (*credentials.Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	store, err := credentials.NewStore(cfg.CredentialsStore, cfg.CredentialsPath, cfg.AppName)
	if err != nil {
		return nil, fmt.Errorf("open credentials store: %w", err)
	}
	log.DebugObj("credentials store opened", "credentials_store", map[string]any{
		"type": cfg.CredentialsStore,
		"path": cfg.CredentialsPath,
	})
	return credentials.NewManager(store, log), nil
}
