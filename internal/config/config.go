package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultWorkspaceDirName is joined to $HOME when WORKSPACE is unset.
	DefaultWorkspaceDirName = "workspace"

	// DefaultPreferredClient is the higher-level clone client tried before git.
	DefaultPreferredClient = "gh"

	// RootDirPrefix prefixes every per-package directory under the workspace.
	RootDirPrefix = "gopath-"

	configDirName  = "gosandbox"
	configFileName = "config.toml"
)

// Environment variables consulted by Load.
const (
	EnvWorkspace = "WORKSPACE"
	EnvForceGit  = "FORCE_GIT"
	EnvShell     = "SHELL"
	EnvConfig    = "GOSANDBOX_CONFIG"
)

// Config holds the effective settings for one invocation.
type Config struct {
	// Workspace is the base directory holding every gopath-<name> tree.
	Workspace string `toml:"workspace"`

	// PreferredClient is the higher-level clone client ("gh", "hub" or "" for none).
	PreferredClient string `toml:"preferred_client"`

	// ForceGit disables PreferredClient.
	ForceGit bool `toml:"force_git"`

	// Shell is the interpreter for interactive and command modes.
	Shell string `toml:"shell"`

	// Source is the config file that was read, empty when none was found.
	Source string `toml:"-"`
}

var validClients = map[string]bool{"": true, "gh": true, "hub": true}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	if c.Workspace == "" {
		return fmt.Errorf("workspace is required (set %s or HOME)", EnvWorkspace)
	}
	if !filepath.IsAbs(c.Workspace) {
		return fmt.Errorf("workspace must be an absolute path (got %q)", c.Workspace)
	}
	if !validClients[c.PreferredClient] {
		return fmt.Errorf("invalid preferred_client: %s (must be gh, hub, or empty)", c.PreferredClient)
	}
	return nil
}

// Client returns the preferred clone client, or "" when it is disabled.
func (c *Config) Client() string {
	if c.ForceGit {
		return ""
	}
	return c.PreferredClient
}

// DefaultPath returns the config file location: $GOSANDBOX_CONFIG, then
// $XDG_CONFIG_HOME/gosandbox/config.toml, then ~/.config/gosandbox/config.toml.
func DefaultPath(getenv func(string) string) string {
	if p := getenv(EnvConfig); p != "" {
		return p
	}
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDirName, configFileName)
	}
	if home := getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", configDirName, configFileName)
	}
	return ""
}

// Load builds the effective Config. Values come from, in increasing
// precedence: defaults, the TOML file, the environment.
//
// An explicit path that does not exist is an error; a missing file at the
// default location is not.
func Load(path string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	home := getenv("HOME")

	cfg := &Config{
		PreferredClient: DefaultPreferredClient,
	}
	if home != "" {
		cfg.Workspace = filepath.Join(home, DefaultWorkspaceDirName)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath(getenv)
	}
	if path != "" {
		err := cfg.loadFile(path)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return nil, err
		}
	}

	if ws := getenv(EnvWorkspace); ws != "" {
		cfg.Workspace = ws
	}
	if getenv(EnvForceGit) != "" {
		cfg.ForceGit = true
	}
	if sh := getenv(EnvShell); sh != "" {
		cfg.Shell = sh
	}

	cfg.Workspace = expandHome(cfg.Workspace, home)
	if cfg.Workspace != "" {
		cfg.Workspace = filepath.Clean(cfg.Workspace)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file Config
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q in config %s", undecoded[0].String(), path)
	}

	if meta.IsDefined("workspace") {
		c.Workspace = file.Workspace
	}
	if meta.IsDefined("preferred_client") {
		c.PreferredClient = file.PreferredClient
	}
	if meta.IsDefined("force_git") {
		c.ForceGit = file.ForceGit
	}
	if meta.IsDefined("shell") {
		c.Shell = file.Shell
	}
	c.Source = path
	return nil
}

// expandHome replaces a leading ~ with home.
func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
