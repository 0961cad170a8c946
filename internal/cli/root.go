// Package cli builds the dodot-firefox command tree.
package cli

import (
	"errors"

	"github.com/arthur-debert/dodot-firefox/internal/version"
	"github.com/arthur-debert/dodot-firefox/pkg/config"
	"github.com/arthur-debert/dodot-firefox/pkg/logging"
	"github.com/arthur-debert/dodot-firefox/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	// Plugins register themselves in init.
	_ "github.com/arthur-debert/dodot-firefox/pkg/firefox"
	_ "github.com/arthur-debert/dodot-firefox/pkg/link"
)

// globalOptions are shared by every command.
type globalOptions struct {
	verbosity int
	format    ui.Format
	noLogFile bool
}

// renderer builds the output renderer for cmd.
func (g *globalOptions) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	return ui.NewRenderer(g.format, cmd.OutOrStdout())
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dodot-firefox",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			noFile := opts.noLogFile
			// Settings errors surface again in the commands that need them.
			if cfg, err := config.Load(config.LoadOptions{}); err == nil && !cfg.Logging.File {
				noFile = true
			}
			logging.SetupLoggerWithOptions(logging.Options{
				Verbosity: opts.verbosity,
				NoFile:    noFile,
				Console:   cmd.ErrOrStderr(),
			})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().Var(&opts.format, "format", MsgFlagFormat)
	rootCmd.PersistentFlags().BoolVar(&opts.noLogFile, "no-log-file", false, "Do not write the log file")
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetHelpCommandGroupID("misc")
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newProfilesCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}
