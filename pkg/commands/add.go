package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command, so *options.StoreOptions) {
	ao := &options.AddOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task to the list.",
		Example: `
todo add Buy milk
todo add "Call the plumber" --json
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return ao.SetText(args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context(), so, false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			if err := s.writable(); err != nil {
				return oo.HandleError(err)
			}

			a := add.Add{
				Text:       ao.Text,
				ShowID:     ido.ShowID,
				Output:     oo,
				Controller: s.controller,
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddStructuredOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
