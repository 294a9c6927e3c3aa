package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/todo/pkg/commands/options"
)

func New() *cobra.Command {
	so := &options.StoreOptions{}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: base.Wrap80("A small to-do list kept in a local key-value store."),
		Long: base.Wrap80("Run without arguments in a terminal to open the interactive list. " +
			"The subcommands work on the same list from scripts."),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fd := os.Stdin.Fd()
			if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				return cmd.Help()
			}
			return runUI(cmd, so)
		},
	}

	options.AddStoreArgs(cmd, so)
	AddCommands(cmd, so)
	return cmd
}

func AddCommands(topLevel *cobra.Command, so *options.StoreOptions) {
	addUI(topLevel, so)
	addAdd(topLevel, so)
	addList(topLevel, so)
	addDone(topLevel, so)
	addEdit(topLevel, so)
	addDelete(topLevel, so)
	addInfo(topLevel, so)
	addMCP(topLevel, so)
	addVersion(topLevel)
	addCompletions(topLevel)
}
