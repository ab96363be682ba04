package commands

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/studydesk/studydesk/internal/core/config"
	"github.com/studydesk/studydesk/internal/studydesk"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// App is the application service for all collection operations
	App *studydesk.App
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "studydesk", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, "studydesk")
}
