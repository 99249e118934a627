// Package config provides configuration loading for gosandbox.
//
// # Sources
//
// Settings are merged from three layers, later layers winning:
//
//   - Defaults: workspace = $HOME/workspace, preferred_client = "gh"
//   - TOML file: $GOSANDBOX_CONFIG, $XDG_CONFIG_HOME/gosandbox/config.toml
//     or ~/.config/gosandbox/config.toml
//   - Environment: WORKSPACE, FORCE_GIT, SHELL
//
// # File Format
//
//	workspace = "~/src/sandboxes"
//	preferred_client = "gh"   # "gh", "hub" or "" to always use git
//	force_git = false
//	shell = "/bin/zsh"        # used only when $SHELL is unset
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
//
// # Validation
//
// Config.Validate requires an absolute workspace and a known preferred
// client. Load validates before returning.
package config
