package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const recordFileName = "subscription.txt"

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("credentials record not found")

// Record is the persisted subscription key / endpoint pair. Either field may
// be empty.
type Record struct {
	SubscriptionKey string
	Endpoint        string
}

// MarshalText renders the record as two lines: key, then endpoint.
func (r Record) MarshalText() ([]byte, error) {
	return []byte(r.SubscriptionKey + "\n" + r.Endpoint + "\n"), nil
}

// UnmarshalText parses the two-line form. Missing lines leave fields empty.
func (r *Record) UnmarshalText(text []byte) error {
	*r = Record{}
	sc := bufio.NewScanner(strings.NewReader(string(text)))
	for i := 0; i < 2 && sc.Scan(); i++ {
		line := strings.TrimSpace(sc.Text())
		if i == 0 {
			r.SubscriptionKey = line
		} else {
			r.Endpoint = line
		}
	}
	return sc.Err()
}

// Store persists a single Record.
type Store interface {
	Load() (Record, error)
	Save(Record) error
	Close() error
}

// DefaultPath is the per-user location of the record file for appName.
func DefaultPath(appName string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, appName, recordFileName), nil
}

// NewStore creates the configured credential backend. An empty path resolves
// to DefaultPath(appName); for bbolt the database sits next to it.
func NewStore(typ, path, appName string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	path = strings.TrimSpace(path)
	if path == "" {
		p, err := DefaultPath(appName)
		if err != nil {
			return nil, err
		}
		path = p
		if typ == "bbolt" {
			path = filepath.Join(filepath.Dir(p), "credentials.db")
		}
	}

	switch typ {
	case "", "file":
		return &fileStore{path: path}, nil
	case "bbolt":
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported credentials store %q", typ)
	}
}

// fileStore keeps the record as a two-line text file.
type fileStore struct {
	path string
}

func (f *fileStore) Load() (Record, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("read credentials file: %w", err)
	}
	var rec Record
	if err := rec.UnmarshalText(raw); err != nil {
		return Record{}, fmt.Errorf("parse credentials file: %w", err)
	}
	return rec, nil
}

func (f *fileStore) Save(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}
	raw, _ := rec.MarshalText()
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	return nil
}

func (f *fileStore) Close() error { return nil }
