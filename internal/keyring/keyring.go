// Package keyring stores the PostgreSQL connection string in the OS keyring
// so it never has to live in a dotfile or shell history.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/tidystreak/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrEmpty is returned when asked to store an empty connection string
	ErrEmpty = errors.New("connection string cannot be empty")
)

// Entry addresses one secret in the keyring
type Entry struct {
	Service string
	User    string
}

// Default is the entry holding the database connection string
var Default = Entry{Service: constants.AppName, User: constants.DefaultKeyringUser}

func (e Entry) Get() (string, error) {
	secret, err := keyring.Get(e.Service, e.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func (e Entry) Set(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return ErrEmpty
	}
	if err := keyring.Set(e.Service, e.User, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (e Entry) Delete() error {
	err := keyring.Delete(e.Service, e.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString returns the stored connection string or ErrNotFound
func GetConnectionString() (string, error) {
	return Default.Get()
}

func SetConnectionString(connStr string) error {
	return Default.Set(connStr)
}

func DeleteConnectionString() error {
	return Default.Delete()
}

// IsAvailable makes a best-effort read to see whether a keyring backend answers
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// MaskPassword hides the password of a URL or DSN connection string for display
func MaskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		idx := strings.Index(connStr, "://") + 3
		authority := connStr[idx:]
		if slash := strings.Index(authority, "/"); slash != -1 {
			authority = authority[:slash]
		}
		atIdx := strings.LastIndex(authority, "@")
		if atIdx == -1 {
			return connStr
		}
		userInfo := authority[:atIdx]
		colonIdx := strings.Index(userInfo, ":")
		if colonIdx == -1 {
			return connStr
		}
		return connStr[:idx] + userInfo[:colonIdx] + ":****" + connStr[idx+atIdx:]
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
