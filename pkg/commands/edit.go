package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command, so *options.StoreOptions) {
	ao := &options.AddOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit <ref> <text>",
		Short: "Replace the text of a task.",
		Example: `
todo edit 1 Buy oat milk
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(2)(cmd, args); err != nil {
				return err
			}
			ido.Ref = args[0]
			return ao.SetText(args[1:])
		},
		ValidArgsFunction: refCompletions(so),
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

			e := edit.Edit{
				Ref:        ido.Ref,
				Text:       ao.Text,
				ShowID:     ido.ShowID,
				Output:     oo,
				Controller: s.controller,
			}
			return oo.HandleError(e.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
