package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dodot-firefox/internal/version"
	"github.com/arthur-debert/dodot-firefox/pkg/plugin"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dodot-firefox version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
			fmt.Fprintf(out, "  plugins: %s\n", strings.Join(plugin.Names(), ", "))
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(dodot-firefox completion bash)

Zsh:
  $ dodot-firefox completion zsh > "${fpath[1]}/_dodot-firefox"

Fish:
  $ dodot-firefox completion fish | source

PowerShell:
  PS> dodot-firefox completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "DODOT-FIREFOX",
				Section: "1",
				Source:  "dodot-firefox " + version.Version,
				Manual:  "dodot-firefox manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
