package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/list"
)

func addList(topLevel *cobra.Command, so *options.StoreOptions) {
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}
	var open, done bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the task list.",
		Example: `
todo list
todo list --open --show-id
todo list --yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context(), so, false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			l := list.List{
				ShowID:     ido.ShowID,
				Open:       open,
				Done:       done,
				Output:     oo,
				Controller: s.controller,
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Only show tasks that are not completed.")
	cmd.Flags().BoolVar(&done, "done", false, "Only show completed tasks.")
	cmd.MarkFlagsMutuallyExclusive("open", "done")
	options.AddShowIDArgs(cmd, ido)
	options.AddStructuredOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
