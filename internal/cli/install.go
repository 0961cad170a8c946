package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dodot-firefox/pkg/config"
	"github.com/arthur-debert/dodot-firefox/pkg/dispatcher"
	"github.com/arthur-debert/dodot-firefox/pkg/link"
	"github.com/arthur-debert/dodot-firefox/pkg/logging"
	"github.com/arthur-debert/dodot-firefox/pkg/paths"
	"github.com/arthur-debert/dodot-firefox/pkg/plugin"
	"github.com/arthur-debert/dodot-firefox/pkg/ui/display"
	"github.com/spf13/cobra"
)

type installOptions struct {
	installFile string
	baseDir     string
	dryRun      bool
	only        []string
	except      []string
	force       bool
	relink      bool
}

func newInstallCmd(global *globalOptions) *cobra.Command {
	opts := &installOptions{}

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.installFile, "config-file", "c", "", MsgFlagConfigFile)
	cmd.Flags().StringVarP(&opts.baseDir, "base-directory", "d", "", MsgFlagBaseDir)
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, MsgFlagOnly)
	cmd.Flags().StringSliceVar(&opts.except, "except", nil, MsgFlagExcept)
	cmd.Flags().BoolVar(&opts.force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&opts.relink, "relink", false, MsgFlagRelink)
	cmd.MarkFlagsMutuallyExclusive("only", "except")
	_ = cmd.MarkFlagFilename("config-file", "yaml", "yml", "json", "toml")
	_ = cmd.MarkFlagDirname("base-directory")

	return cmd
}

func runInstall(cmd *cobra.Command, global *globalOptions, opts *installOptions) error {
	logger := logging.GetLogger("cli.install")
	defer logging.LogOperationStart(logger, "install")()

	overrides := map[string]any{}
	if cmd.Flags().Changed("force") {
		overrides["link.force"] = opts.force
	}
	if cmd.Flags().Changed("relink") {
		overrides["link.relink"] = opts.relink
	}
	cfg, err := config.Load(config.LoadOptions{Overrides: overrides})
	if err != nil {
		return fmt.Errorf(MsgErrLoadSettings, err)
	}

	installFile := opts.installFile
	if installFile == "" {
		installFile = cfg.Install.File
	}
	if installFile == "" {
		installFile = paths.DefaultInstallFile
	}
	installFile, err = filepath.Abs(installFile)
	if err != nil {
		return err
	}

	baseDir := opts.baseDir
	if baseDir == "" {
		baseDir = filepath.Dir(installFile)
	}
	baseDir, err = filepath.Abs(baseDir)
	if err != nil {
		return err
	}

	logger.Info().
		Str("installFile", installFile).
		Str("baseDirectory", baseDir).
		Bool("dryRun", opts.dryRun).
		Msg("Starting install")

	tasks, err := config.LoadInstallFile(installFile)
	if err != nil {
		return err
	}

	// Sources are resolved from the base directory.
	restore, err := enterDir(baseDir)
	if err != nil {
		return fmt.Errorf(MsgErrBaseDir, err)
	}
	defer restore()

	ctx := plugin.NewContext(baseDir)
	ctx.DryRun = opts.dryRun
	ctx.MergeDefaults(link.Directive, cfg.Link.Data())

	result, err := dispatcher.Run(ctx, tasks, dispatcher.Options{
		Only:   opts.only,
		Except: opts.except,
	})
	if err != nil {
		return err
	}

	renderer, err := global.renderer(cmd)
	if err != nil {
		return err
	}
	if err := renderer.RenderRun(display.NewRunReport(installFile, result)); err != nil {
		return err
	}

	if !result.Success() {
		return fmt.Errorf(MsgErrTasksFailed, result.Count(dispatcher.StatusFailed))
	}
	return nil
}

// enterDir changes the working directory and returns a func restoring it.
func enterDir(dir string) (func(), error) {
	previous, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(dir); err != nil {
		return nil, err
	}
	logger := logging.GetLogger("cli.install")
	return func() {
		if err := os.Chdir(previous); err != nil {
			logger.Warn().Err(err).Str("dir", previous).Msg("Could not restore working directory")
		}
	}, nil
}
