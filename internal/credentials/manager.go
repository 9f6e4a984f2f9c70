package credentials

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/samvad-hq/emotion-sdk/internal/logger"
	"github.com/samvad-hq/emotion-sdk/pkg/emotion"
)

const (
	// KeyPlaceholder is shown in place of a subscription key that is not set.
	KeyPlaceholder = "Paste your subscription key here firstly"
	// EndpointPlaceholder is shown in place of an endpoint that is not set.
	EndpointPlaceholder = "Paste your EndPoint here to start"
	// SignUpURL is where a subscription key can be obtained.
	SignUpURL = "https://www.microsoft.com/cognitive-services/en-us/sign-up"
)

// ErrNoSubscriptionKey is returned by NewClient before a key has been entered.
var ErrNoSubscriptionKey = errors.New("no subscription key configured")

// Manager holds the last-entered subscription key and endpoint and mirrors
// them to a Store. Values equal to the placeholders are treated as unset.
type Manager struct {
	store Store
	log   logger.Logger

	mu       sync.RWMutex
	key      string
	endpoint string
}

// NewManager loads the stored record. A missing or unreadable record is not an
// error: both fields start unset.
func NewManager(store Store, log logger.Logger) *Manager {
	if log == nil {
		log = &logger.NopLogger{}
	}
	m := &Manager{store: store, log: log}

	rec, err := store.Load()
	switch {
	case errors.Is(err, ErrNotFound):
		log.DebugObj("no stored credentials", "credentials_state", "empty")
	case err != nil:
		log.WarnObj("stored credentials unreadable", "error", err.Error())
	default:
		m.key = normalize(rec.SubscriptionKey, KeyPlaceholder)
		m.endpoint = normalize(rec.Endpoint, EndpointPlaceholder)
	}
	return m
}

// SubscriptionKey returns the key, or KeyPlaceholder when unset.
func (m *Manager) SubscriptionKey() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.key == "" {
		return KeyPlaceholder
	}
	return m.key
}

// Endpoint returns the endpoint, or EndpointPlaceholder when unset.
func (m *Manager) Endpoint() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.endpoint == "" {
		return EndpointPlaceholder
	}
	return m.endpoint
}

// SetCredentials replaces the in-memory pair without persisting it.
func (m *Manager) SetCredentials(key, endpoint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.key = normalize(key, KeyPlaceholder)
	m.endpoint = normalize(endpoint, EndpointPlaceholder)
}

// Save persists the current pair.
func (m *Manager) Save() error {
	m.mu.RLock()
	rec := Record{SubscriptionKey: m.key, Endpoint: m.endpoint}
	m.mu.RUnlock()

	if err := m.store.Save(rec); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	m.log.InfoObj("credentials saved", "credentials_meta", map[string]any{
		"has_key":      rec.SubscriptionKey != "",
		"has_endpoint": rec.Endpoint != "",
	})
	return nil
}

// Delete resets both fields and persists the empty record.
func (m *Manager) Delete() error {
	m.mu.Lock()
	m.key, m.endpoint = "", ""
	m.mu.Unlock()

	if err := m.store.Save(Record{}); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	m.log.InfoObj("credentials deleted", "credentials_state", "empty")
	return nil
}

// NewClient builds an emotion client from the current pair. The endpoint, when
// set, overrides cfg.APIRoot.
func (m *Manager) NewClient(cfg emotion.Config) (*emotion.Client, error) {
	m.mu.RLock()
	key, endpoint := m.key, m.endpoint
	m.mu.RUnlock()

	if key == "" {
		return nil, ErrNoSubscriptionKey
	}
	if endpoint != "" {
		cfg.APIRoot = endpoint
	}
	cfg.Credentials.HeaderValue = key
	return emotion.New(cfg)
}

func normalize(v, placeholder string) string {
	v = strings.TrimSpace(v)
	if v == placeholder {
		return ""
	}
	return v
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	if m == nil || m.store == nil {
		return nil
	}
	return m.store.Close()
}
