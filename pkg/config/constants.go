package config

// Application constants - centralized configuration values used across packages

// === File Paths ===

// Directory and file names (relative to the working directory unless overridden)
const (
	// DefaultStateDir holds the account registry and the per-account session files
	DefaultStateDir = "stored_sessions"

	// AccountsFileName is the account registry file name within the state dir
	AccountsFileName = "sessions.json"

	// SessionFileExt is the extension of per-account session files
	SessionFileExt = ".session"

	// TranscriptFileName is the transcript file written into each conversation directory
	TranscriptFileName = "messages.txt"

	// UnansweredDirName collects copies of conversations that end with an unanswered message.
	// The leading exclamation marks sort it first in file managers.
	UnansweredDirName = "!!!!!UNANSWERED"
)

// Output name patterns, filled with the account's first name and the range dates
const (
	OutputDirPattern   = "%s_messages_%s_%s"
	SummaryFilePattern = "%s_statistics_%s_%s.txt"

	// OutputDateLayout formats range dates in output names
	OutputDateLayout = "2006-01-02"
)

// === Defaults ===

const (
	// DefaultWorkingHours is used when the operator leaves the working hours prompt empty
	DefaultWorkingHours = "09:00 - 18:00"
)

// === Environment Variables ===

// Environment variable names. Values may also come from a .env file in the working directory.
const (
	// StateDirEnv overrides DefaultStateDir
	StateDirEnv = "TGSTATS_STATE_DIR"

	// TimezoneEnv is an IANA zone name used for day boundaries and working hours (default: local)
	TimezoneEnv = "TGSTATS_TZ"

	// WorkingHoursEnv overrides DefaultWorkingHours
	WorkingHoursEnv = "TGSTATS_WORKING_HOURS"

	// APIIDEnv and APIHashEnv are offered as defaults when adding an account
	APIIDEnv   = "TGSTATS_API_ID"
	APIHashEnv = "TGSTATS_API_HASH"
)
