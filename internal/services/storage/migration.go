package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
)

// EnableEncryption encrypts every dataset file in the data directory
// with the given password and writes the marker and verification
// files. The store ends up unlocked.
func (s *Store) EnableEncryption(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encrypted {
		return fmt.Errorf("encryption is already enabled")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return fmt.Errorf("failed to create recipient: %w", err)
	}
	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	// Verification file first so Unlock can always check the password.
	verifyPath := filepath.Join(s.dataDir, verifyFile)
	encrypted, err := encryptData([]byte(verifyMagic), recipient)
	if err != nil {
		return fmt.Errorf("failed to encrypt verification file: %w", err)
	}
	if err := os.WriteFile(verifyPath, encrypted, 0644); err != nil {
		return fmt.Errorf("failed to write verification file: %w", err)
	}

	files, err := s.datasetFiles()
	if err != nil {
		os.Remove(verifyPath)
		return fmt.Errorf("failed to scan files: %w", err)
	}

	for _, path := range files {
		if err := encryptFile(path, recipient); err != nil {
			s.rollbackEncryption(files, identity)
			os.Remove(verifyPath)
			return fmt.Errorf("failed to encrypt %s: %w", filepath.Base(path), err)
		}
	}

	markerPath := filepath.Join(s.dataDir, markerFile)
	if err := os.WriteFile(markerPath, []byte("encrypted"), 0644); err != nil {
		return fmt.Errorf("failed to create marker file: %w", err)
	}

	s.encrypted = true
	s.identity = identity
	s.recipient = recipient
	return nil
}

// DisableEncryption verifies the password, decrypts every encrypted
// file in place, and removes the marker and verification files.
func (s *Store) DisableEncryption(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.encrypted {
		return fmt.Errorf("encryption is not enabled")
	}

	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	verifyPath := filepath.Join(s.dataDir, verifyFile)
	encrypted, err := os.ReadFile(verifyPath)
	if err != nil {
		return fmt.Errorf("failed to read verification file: %w", err)
	}
	decrypted, err := decryptData(encrypted, identity)
	if err != nil || string(decrypted) != verifyMagic {
		return fmt.Errorf("incorrect password")
	}

	var toDecrypt []string
	err = filepath.Walk(s.dataDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if isAgeEncrypted(data) {
			toDecrypt = append(toDecrypt, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan files: %w", err)
	}

	for _, path := range toDecrypt {
		if err := decryptFile(path, identity); err != nil {
			return fmt.Errorf("failed to decrypt %s: %w", filepath.Base(path), err)
		}
	}

	os.Remove(filepath.Join(s.dataDir, markerFile))
	os.Remove(verifyPath)

	s.encrypted = false
	s.identity = nil
	s.recipient = nil
	return nil
}

// datasetFiles lists the CSV and JSON files under the data directory.
// Control files stay plaintext.
func (s *Store) datasetFiles() ([]string, error) {
	var files []string
	err := filepath.Walk(s.dataDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if isControlFile(path) {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".csv" || ext == ".json" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func encryptFile(path string, recipient *age.ScryptRecipient) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isAgeEncrypted(data) {
		return nil
	}

	encrypted, err := encryptData(data, recipient)
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, encrypted, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func decryptFile(path string, identity *age.ScryptIdentity) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !isAgeEncrypted(data) {
		return nil
	}

	decrypted, err := decryptData(data, identity)
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, decrypted, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// rollbackEncryption best-effort decrypts files touched by a failed
// EnableEncryption run.
func (s *Store) rollbackEncryption(files []string, identity *age.ScryptIdentity) {
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil || !isAgeEncrypted(data) {
			continue
		}
		decrypted, err := decryptData(data, identity)
		if err != nil {
			continue
		}
		os.WriteFile(path, decrypted, 0644)
	}
}
