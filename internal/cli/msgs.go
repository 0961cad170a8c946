package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link dotfiles into Firefox profiles"
	MsgInstallShort    = "Run the tasks of an install file"
	MsgProfilesShort   = "List discovered Firefox profiles"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat     = "Output format: auto, term, text or json"
	MsgFlagConfigFile = "Install file to run (default from settings, install.conf.yaml)"
	MsgFlagBaseDir    = "Directory relative sources are resolved against (default: the install file's directory)"
	MsgFlagDryRun     = "Preview changes without executing them"
	MsgFlagOnly       = "Only run these directives"
	MsgFlagExcept     = "Skip these directives"
	MsgFlagForce      = "Replace existing files at link destinations"
	MsgFlagRelink     = "Replace existing symlinks at link destinations"

	// Error messages
	MsgErrLoadSettings = "failed to load settings: %w"
	MsgErrBaseDir      = "failed to enter base directory: %w"
	MsgErrTasksFailed  = "%d directive(s) failed"
	MsgErrNoCommand    = "no command specified"

	// Status messages
	MsgDryRunNotice = "Dry run: nothing was changed"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/profiles-long.txt
	msgProfilesLongRaw string
	MsgProfilesLong    = strings.TrimSpace(msgProfilesLongRaw)
)
