package cli

import (
	"github.com/arthur-debert/dodot-firefox/pkg/profiles"
	"github.com/arthur-debert/dodot-firefox/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newProfilesCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "profiles",
		Short:   MsgProfilesShort,
		Long:    MsgProfilesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locator := profiles.NewLocator()

			renderer, err := global.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderProfiles(display.NewProfileList(locator.Roots(), locator.Describe()))
		},
	}
}
