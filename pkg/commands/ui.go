package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command, so *options.StoreOptions) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive to-do list.",
		Example: `
todo ui
todo ui --ephemeral
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, so)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command, so *options.StoreOptions) error {
	cmd.SilenceUsage = true
	s, err := openSession(cmd.Context(), so, true)
	if err != nil {
		return err
	}
	defer s.Close()

	u := ui.UI{Settings: s.settings, Controller: s.controller}
	return u.Do(cmd.Context())
}
