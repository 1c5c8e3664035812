package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "tidystreak"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tidystreak/tidystreak.db"
	Version            = "v0.3.0"

	// EnvDBConnection overrides --config when set (also read from .env)
	EnvDBConnection = "TIDYSTREAK_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tidystreak-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "tidystreak-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.tidystreak"
	TrayExecutablePrefix   = "tidystreak-tray"
)

// Session States
const (
	StateBoard SessionState = iota
	StateHabits
	StateSettings
	StateAddHabit
	StateEditHabit
	StateStartTimer
	StateNewDay
	StateEditSettings
	StateConfirmDelete
	StateConfirmRestore
	StateConfirmation
)
