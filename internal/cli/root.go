package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/tidystreak/internal/app"
	"github.com/julianstephens/tidystreak/internal/backup"
	"github.com/julianstephens/tidystreak/internal/logger"
	"github.com/julianstephens/tidystreak/internal/storage"
)

type Context struct {
	Store storage.Provider
	App   *app.Service
}

// Stdin is read by confirmation prompts; tests replace it
var Stdin io.Reader = os.Stdin

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if !mgr.Supported() {
		logger.Debug("Skipping automatic backup", "store", c.Store.GetConfigPath())
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// HandleNotifyError prints a warning when only notification updates failed.
// The change itself was saved, so the command still succeeds. Any other
// error is returned unchanged.
func HandleNotifyError(err error) error {
	if err == nil || !app.IsNotifyError(err) {
		return err
	}
	logger.Warn("Notification update failed after commit", "error", err)
	fmt.Fprintf(os.Stderr, "⚠️  Warning: %v\n", err)
	return nil
}

// Confirm asks a yes/no question on stdout and reads the answer from Stdin.
// Anything but "y" or "yes" is a no.
func Confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(Stdin)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
