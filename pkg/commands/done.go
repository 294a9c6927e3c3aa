package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/toggle"
)

func addDone(topLevel *cobra.Command, so *options.StoreOptions) {
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "done <ref>",
		Aliases: []string{"toggle", "complete"},
		Short:   "Toggle a task between open and completed.",
		Long:    base.Wrap80("Toggle a task between open and completed. <ref> is a 1-based position, a full id or a unique id prefix."),
		Example: `
todo done 2
todo done 3f9c
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

			t := toggle.Toggle{
				Ref:        ido.Ref,
				ShowID:     ido.ShowID,
				Output:     oo,
				Controller: s.controller,
			}
			return oo.HandleError(t.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
