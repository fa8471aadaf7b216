package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Account is a saved account registry entry
type Account struct {
	APIID     int    `json:"api_id"`
	APIHash   string `json:"api_hash"`
	Phone     string `json:"phone"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// registryFile represents the structure of sessions.json
type registryFile struct {
	Sessions map[string]Account `json:"sessions"`
}

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// SanitizePhone keeps only digits and '+' so the phone can be used as an account ID
func SanitizePhone(phone string) string {
	return nonPhoneChars.ReplaceAllString(phone, "")
}

// ParseAPIID validates the numeric API ID entered by the operator
func ParseAPIID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAPIID, s)
	}
	return id, nil
}

// LoadAccounts reads the account registry, creating an empty one if it doesn't exist
func LoadAccounts() (map[string]Account, error) {
	path := GetAccountsPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		accounts := make(map[string]Account)
		if err := SaveAccounts(accounts); err != nil {
			return nil, err
		}
		return accounts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	var reg registryFile
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse accounts: %w", err)
	}

	if reg.Sessions == nil {
		reg.Sessions = make(map[string]Account)
	}

	return reg.Sessions, nil
}

// SaveAccounts writes the registry through a temp file and rename
func SaveAccounts(accounts map[string]Account) error {
	path := GetAccountsPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(registryFile{Sessions: accounts}, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".sessions-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp accounts: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// The registry holds API secrets
	if err := os.Chmod(tempPath, 0600); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to set temp file permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp accounts: %w", err)
	}

	return nil
}

// AddAccount stores or replaces the registry entry for id
func AddAccount(id string, account Account) error {
	accounts, err := LoadAccounts()
	if err != nil {
		return err
	}
	accounts[id] = account
	return SaveAccounts(accounts)
}

// RemoveAccount deletes the registry entry for id.
// Returns ErrAccountNotFound if there is no such entry.
func RemoveAccount(id string) error {
	accounts, err := LoadAccounts()
	if err != nil {
		return err
	}
	if _, ok := accounts[id]; !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	delete(accounts, id)
	return SaveAccounts(accounts)
}

// GetAccount returns the registry entry for id.
// Returns ErrAccountNotFound if there is no such entry.
func GetAccount(id string) (Account, error) {
	accounts, err := LoadAccounts()
	if err != nil {
		return Account{}, err
	}
	account, ok := accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	return account, nil
}

// AccountIDs returns the registry keys, sorted
func AccountIDs(accounts map[string]Account) []string {
	ids := make([]string, 0, len(accounts))
	for id := range accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
