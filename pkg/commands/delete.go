package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command, so *options.StoreOptions) {
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete <ref>",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete a task.",
		Example: `
todo delete 2
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: refCompletions(so),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ido.Ref = args[0]
			s, err := openSession(cmd.Context(), so, false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			if err := s.writable(); err != nil {
				return oo.HandleError(err)
			}

			r := remove.Remove{
				Ref:        ido.Ref,
				ShowID:     ido.ShowID,
				Output:     oo,
				Controller: s.controller,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
