// Package config loads dodot-firefox settings and install files.
//
// Settings are layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user settings file, $XDG_CONFIG_HOME/dodot-firefox/config.toml
//  3. DODOT_FIREFOX_* environment variables
//  4. overrides supplied by the caller (command-line flags)
//
// Install files list the directives to run. YAML files are a sequence of
// mappings from directive name to data:
//
//	- defaults:
//	    link:
//	      relink: true
//	- firefox:
//	    user.js: firefox/user.js
//
// TOML files hold the same tasks as an array of tables named "tasks".
package config
