package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// Location returns the zone used for day boundaries and working hours
func Location() (*time.Location, error) {
	name := os.Getenv(TimezoneEnv)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", TimezoneEnv, name, err)
	}
	return loc, nil
}

// WorkingHoursDefault returns the working hours used when the prompt is left empty
func WorkingHoursDefault() string {
	return getEnv(WorkingHoursEnv, DefaultWorkingHours)
}

// APICredentialsDefault returns API credentials preset in the environment, if any
func APICredentialsDefault() (apiID, apiHash string) {
	return os.Getenv(APIIDEnv), os.Getenv(APIHashEnv)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
