// Package credentials implements the read-only credential store backing
// local logins. Records are loaded once at process start and never change.
package credentials

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dtroode/fileshare-server/internal/model"
)

// Store holds the immutable credential set. Passwords are compared in
// constant time; they are still stored in plain text, which is acceptable
// only for a demo credential file.
type Store struct {
	records []model.Credential
}

// New loads the credential set from a JSON file of
// [{"username": ..., "password": ...}] records.
func New(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	var records []model.Credential
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to parse users file: %w", err)
	}

	return NewFromRecords(records), nil
}

// NewFromRecords builds a store from an in-memory record set.
func NewFromRecords(records []model.Credential) *Store {
	return &Store{records: records}
}

// Verify performs an exact match against the record set. A mismatch is a
// negative answer, not an error, so the login flow stays a pure decision.
func (s *Store) Verify(username, password string) (model.Identity, bool) {
	for _, rec := range s.records {
		if rec.Username != username {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(rec.Password), []byte(password)) == 1 {
			return model.Identity{Username: rec.Username}, true
		}
	}
	return model.Identity{}, false
}
