// Package storage gives the rest of the application transparent access
// to the data directory. When encryption is enabled every dataset file
// is kept Age-encrypted at rest and decrypted on read once the store
// has been unlocked with the password.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"filippo.io/age"
)

const (
	// ageHeader is the prefix of Age-encrypted files
	ageHeader = "age-encryption.org"

	// markerFile indicates encryption is enabled
	markerFile = ".encrypted"

	// verifyFile is used to validate the password
	verifyFile = ".encryption-verify"

	// verifyMagic is the expected content in the verify file
	verifyMagic = `{"magic":"financeiq-encryption-verify","version":1}`
)

// Store reads and writes files in the data directory, encrypting and
// decrypting transparently when a password has been set.
type Store struct {
	dataDir   string
	encrypted bool
	identity  *age.ScryptIdentity
	recipient *age.ScryptRecipient
	mu        sync.RWMutex
}

// New opens a store rooted at dataDir, creating the directory if
// needed and detecting whether encryption was previously enabled.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{dataDir: dataDir}
	if _, err := os.Stat(filepath.Join(dataDir, markerFile)); err == nil {
		s.encrypted = true
	}
	return s, nil
}

// DataDir returns the directory the store is rooted at.
func (s *Store) DataDir() string {
	return s.dataDir
}

// IsEncrypted reports whether the data directory is encrypted at rest.
func (s *Store) IsEncrypted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.encrypted
}

// IsUnlocked reports whether reads and writes can proceed. A store
// without encryption is always unlocked.
func (s *Store) IsUnlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.encrypted || s.identity != nil
}

// Unlock verifies the password against the verification file and keeps
// the derived key in memory for subsequent reads and writes.
func (s *Store) Unlock(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.encrypted {
		return nil
	}

	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	encrypted, err := os.ReadFile(filepath.Join(s.dataDir, verifyFile))
	if err != nil {
		return fmt.Errorf("failed to read verification file: %w", err)
	}

	decrypted, err := decryptData(encrypted, identity)
	if err != nil {
		return fmt.Errorf("incorrect password")
	}
	if string(decrypted) != verifyMagic {
		return fmt.Errorf("incorrect password (verification failed)")
	}

	s.identity = identity
	s.recipient, _ = age.NewScryptRecipient(password)
	return nil
}

// Lock clears the derived key from memory.
func (s *Store) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.recipient = nil
}

// ReadFile reads the named file from the data directory, decrypting it
// when necessary. The name is relative to the data directory.
func (s *Store) ReadFile(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.dataDir, name))
	if err != nil {
		return nil, err
	}

	if isAgeEncrypted(data) {
		if s.identity == nil {
			return nil, fmt.Errorf("file %s is encrypted but the store is locked", name)
		}
		return decryptData(data, s.identity)
	}
	return data, nil
}

// WriteFile writes the named file into the data directory, encrypting
// it when encryption is enabled and unlocked.
func (s *Store) WriteFile(name string, data []byte, perm os.FileMode) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := filepath.Join(s.dataDir, name)
	if isControlFile(name) {
		return atomicWrite(path, data, perm)
	}

	if s.encrypted {
		if s.recipient == nil {
			return fmt.Errorf("store is locked")
		}
		encrypted, err := encryptData(data, s.recipient)
		if err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", name, err)
		}
		data = encrypted
	}

	return atomicWrite(path, data, perm)
}

// Exists reports whether the named file is present.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dataDir, name))
	return err == nil
}

// Remove deletes the named file.
func (s *Store) Remove(name string) error {
	return os.Remove(filepath.Join(s.dataDir, name))
}

// atomicWrite writes via a temp file and rename so readers never see a
// partial file.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// isControlFile reports whether a file must stay plaintext for the
// store itself to function.
func isControlFile(name string) bool {
	base := filepath.Base(name)
	return base == markerFile || base == verifyFile
}

// isAgeEncrypted checks if data starts with the Age encryption header
func isAgeEncrypted(data []byte) bool {
	return len(data) > len(ageHeader) && string(data[:len(ageHeader)]) == ageHeader
}
