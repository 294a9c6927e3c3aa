// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// StoreOptions are the persistent flags that override configuration.
type StoreOptions struct {
	Path      string
	Backend   string
	LogLevel  string
	Ephemeral bool
}

// AddStoreArgs registers persistent store flags and binds them to viper so
// they take precedence over .todo.yaml and TODO_* variables.
func AddStoreArgs(cmd *cobra.Command, o *StoreOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.Path, "path", "",
		"Directory holding the task store (default ~/.todo.db).")
	flags.StringVar(&o.Backend, "backend", "",
		"Storage backend: diskv, redis or memory.")
	flags.StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warn or error.")
	flags.BoolVar(&o.Ephemeral, "ephemeral", false,
		"Keep tasks in memory only for this run.")

	_ = viper.BindPFlag("path", flags.Lookup("path"))
	_ = viper.BindPFlag("backend", flags.Lookup("backend"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
}
