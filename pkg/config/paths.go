package config

import (
	"os"
	"path/filepath"
)

// GetStateDir returns the directory holding the account registry and session files.
// Defaults to ./stored_sessions but can be overridden with TGSTATS_STATE_DIR.
func GetStateDir() string {
	if envDir := os.Getenv(StateDirEnv); envDir != "" {
		return envDir
	}
	return DefaultStateDir
}

// EnsureStateDir creates the state directory if needed.
// Returns true when the directory was created by this call.
func EnsureStateDir() (bool, error) {
	dir := GetStateDir()
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return false, err
	}
	return true, nil
}

// GetAccountsPath returns the path of the account registry file
func GetAccountsPath() string {
	return filepath.Join(GetStateDir(), AccountsFileName)
}

// GetSessionPath returns the session file path for an account ID
func GetSessionPath(accountID string) string {
	return filepath.Join(GetStateDir(), accountID+SessionFileExt)
}
