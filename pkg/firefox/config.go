package firefox

import (
	"sort"
)

// Keys recognized in the data of a firefox directive.
const (
	KeyUserJS        = "user.js"
	KeyUserChromeCSS = "userChrome.css"
	KeyChrome        = "chrome"
)

// Setting is one optional directive field.
type Setting struct {
	// Key is the data key the value was read from.
	Key   string
	Value any
	Set   bool
}

// Config is the decoded data of a firefox directive.
type Config struct {
	// UserJS is any link source: a path or a link option mapping.
	UserJS Setting
	// UserChrome must hold a path string naming either a userChrome.css file
	// or a chrome directory. It reads "userChrome.css" first, then "chrome".
	UserChrome Setting
	// Unknown lists unrecognized keys, sorted.
	Unknown []string
}

// ParseConfig reads the recognized keys out of directive data.
func ParseConfig(data map[string]any) Config {
	var cfg Config

	if value, ok := data[KeyUserJS]; ok {
		cfg.UserJS = Setting{Key: KeyUserJS, Value: value, Set: true}
	}

	for _, key := range []string{KeyUserChromeCSS, KeyChrome} {
		if value, ok := data[key]; ok {
			cfg.UserChrome = Setting{Key: key, Value: value, Set: true}
			break
		}
	}

	for key := range data {
		switch key {
		case KeyUserJS, KeyUserChromeCSS, KeyChrome:
		default:
			cfg.Unknown = append(cfg.Unknown, key)
		}
	}
	sort.Strings(cfg.Unknown)

	return cfg
}
