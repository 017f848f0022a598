// Package store persists accounts, the active session and per-account
// journals as JSON values in a diskv key/value store.
//
// Keys:
//
//	session           the logged in Account
//	users             map of email to Account
//	journal:<email>   entries for one account, newest first
package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

const (
	keySession    = "session"
	keyUsers      = "users"
	journalPrefix = "journal:"
	journalDir    = "journal"
	tempDir       = ".tmp"
)

// Store is the durable key/value storage shared by the credential,
// session and journal stores.
type Store struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Load creates a Store backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (*Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(filepath.Join(basePath, journalDir), 0o700); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	s := &Store{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           filepath.Join(basePath, tempDir),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			// Other processes write the same files, so nothing is cached.
			CacheSizeMax: 0,
			FilePerm:     0o600,
			PathPerm:     0o700,
		}),
		basePath: basePath,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BasePath is the directory holding the store.
func (s *Store) BasePath() string {
	return s.basePath
}

// Credentials returns the account registry.
func (s *Store) Credentials() *Credentials {
	return &Credentials{s: s}
}

// Sessions returns the session store.
func (s *Store) Sessions() *Sessions {
	return &Sessions{s: s}
}

// Journal returns the per-account journal store.
func (s *Store) Journal() *Journal {
	return &Journal{s: s}
}

// readJSON decodes key into v. It reports false when the key is absent.
func (s *Store) readJSON(ctx context.Context, key string, v any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	rc, err := s.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

// writeJSON replaces key with the encoding of v. diskv writes through
// TempDir and renames, so a value is either fully written or untouched.
func (s *Store) writeJSON(ctx context.Context, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	s.log.Debug("stored value", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func (s *Store) erase(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	if email, ok := strings.CutPrefix(s, journalPrefix); ok {
		return &diskv.PathKey{
			Path:     []string{journalDir},
			FileName: toFileName(email),
		}
	}
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 1 && pathKey.Path[0] == journalDir {
		return journalPrefix + fromFileName(pathKey.FileName)
	}
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), "/")
}

func journalKey(email string) string {
	return journalPrefix + email
}

// toFileName encodes an email so it is safe as a single path element.
func toFileName(email string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(email))
}

func fromFileName(s string) string {
	email, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromFileName: %s", err)
	}
	return string(email)
}
