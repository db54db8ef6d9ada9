// =============================================================================
// Smart Bookshop POS - Credential Store
// =============================================================================
//
// Owns the single staff password, persisted as plain text in a JSON file:
//
//   { "password": "admin123" }
//
// SECURITY NOTE:
//   The password is stored and compared in plain text, matching the
//   existing credentials.json format. Do not reuse this scheme for anything
//   that leaves the shop machine.
//
// =============================================================================

package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/smartbookshop/bookshop-pos/internal/types"
	"github.com/smartbookshop/bookshop-pos/internal/validation"
	"github.com/smartbookshop/bookshop-pos/pkg/utils"
)

// credentialsFile is the on-disk shape of credentials.json.
type credentialsFile struct {
	Password string `json:"password"`
}

// Store holds the staff password.
type Store struct {
	path            string
	defaultPassword string

	mu       sync.RWMutex
	password string
}

// NewStore creates a store backed by path. defaultPassword is written when
// the file does not exist yet.
func NewStore(path, defaultPassword string) *Store {
	return &Store{path: path, defaultPassword: defaultPassword}
}

// Load reads the credential file, seeding it with the default password on
// first run.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.persist(s.defaultPassword); err != nil {
			return err
		}
		s.password = s.defaultPassword
		return nil
	}
	if err != nil {
		return &types.IOError{Op: "read", Path: s.path, Err: err}
	}

	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return &types.CorruptDataError{Path: s.path, Err: fmt.Errorf("failed to parse credentials: %w", err)}
	}
	if creds.Password == "" {
		return &types.CorruptDataError{Path: s.path, Err: errors.New("password is empty")}
	}

	s.password = creds.Password
	return nil
}

// Verify reports whether candidate equals the stored password.
func (s *Store) Verify(candidate string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.password != "" && candidate == s.password
}

// Change replaces the password.
//
// RETURNS:
//   - *types.AuthError if current is wrong.
//   - *types.ValidationError if newPassword is empty or differs from confirm.
//   - *types.IOError if the file cannot be written; the old password stays.
func (s *Store) Change(current, newPassword, confirm string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current != s.password {
		return &types.AuthError{Message: "current password is incorrect"}
	}
	if err := validation.ValidatePasswordChange(newPassword, confirm); err != nil {
		return err
	}

	if err := s.persist(newPassword); err != nil {
		return err
	}
	s.password = newPassword
	return nil
}

func (s *Store) persist(password string) error {
	data, err := json.MarshalIndent(credentialsFile{Password: password}, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := utils.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return &types.IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}
