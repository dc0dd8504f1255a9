// Package credential implements an opt-in, on-disk cache of bcrypt-hashed
// account passwords, so a long-running client (a bot process) can verify a
// previously-entered password before re-attempting Login without
// re-prompting a human. Grounded on the teacher's AccountRepo
// Create/ValidatePassword shape, retargeted from a Postgres row to a single
// JSON file per account directory.
package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Entry is one cached account's hashed-at-rest credential.
type Entry struct {
	Account      string    `json:"account"`
	PasswordHash string    `json:"password_hash"`
	LastVerified time.Time `json:"last_verified"`
}

// Store is a directory of cached credential entries, one JSON file per
// account.
type Store struct {
	dir string
}

// NewStore builds a Store rooted at dir, creating it if absent.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create credential store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(account string) string {
	return filepath.Join(s.dir, account+".json")
}

// Save hashes rawPassword and writes it to disk, replacing any prior entry
// for account.
func (s *Store) Save(account, rawPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	entry := Entry{Account: account, PasswordHash: string(hash), LastVerified: time.Now()}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credential entry: %w", err)
	}
	if err := os.WriteFile(s.path(account), data, 0o600); err != nil {
		return fmt.Errorf("write credential entry: %w", err)
	}
	return nil
}

// Verify reports whether rawPassword matches the cached hash for account.
// It returns (false, nil) if no entry exists yet.
func (s *Store) Verify(account, rawPassword string) (bool, error) {
	data, err := os.ReadFile(s.path(account))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read credential entry: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return false, fmt.Errorf("unmarshal credential entry: %w", err)
	}
	return bcrypt.CompareHashAndPassword([]byte(entry.PasswordHash), []byte(rawPassword)) == nil, nil
}

// Forget deletes any cached entry for account.
func (s *Store) Forget(account string) error {
	err := os.Remove(s.path(account))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
