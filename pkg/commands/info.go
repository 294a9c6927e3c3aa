package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command, so *options.StoreOptions) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about where tasks are stored.",
		Example: `
todo info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context(), so, false)
			if err != nil {
				return err
			}
			defer s.Close()

			i := info.Info{
				Settings:   s.settings,
				Controller: s.controller,
				Out:        cmd.OutOrStdout(),
			}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
