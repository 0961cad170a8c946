// Package profiles locates Firefox profile directories.
//
// Discovery works from a fixed, platform-dependent list of candidate roots.
// Each immediate child of an existing root that directly contains a prefs.js
// file is a profile. Nothing is cached: every call to Locator.Profiles scans
// the filesystem again, and roots that do not exist are skipped silently.
//
// profiles.ini is only consulted to decorate discovered profiles with their
// display names (Locator.Describe); it never decides what counts as a
// profile.
package profiles
