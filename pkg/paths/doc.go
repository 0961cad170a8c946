// Package paths provides path handling for dodot-firefox.
//
// It covers two concerns:
//
//   - Expansion of user-supplied path templates: a leading "~" and
//     "$VAR"/"${VAR}" environment references, as found in install files and
//     in the built-in Firefox profile root templates.
//   - Locations owned by dodot-firefox itself, following the XDG Base
//     Directory specification (configuration file, log file).
//
// # Environment Variables
//
//   - DODOT_FIREFOX_CONFIG_DIR: overrides $XDG_CONFIG_HOME/dodot-firefox
//
// Expansion is performed through an Expander so that tests can supply their
// own environment and home directory instead of mutating the process.
package paths
