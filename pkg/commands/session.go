package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/store"
)

// session is one command's view of the configured store.
type session struct {
	settings   *store.Settings
	controller *app.Controller
	closers    []io.Closer
}

// openSession reads configuration, opens the store and loads the task list.
// Interactive sessions leave loading and logging to the terminal UI.
func openSession(ctx context.Context, so *options.StoreOptions, interactive bool) (*session, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if so != nil && so.Ephemeral {
		settings.Store = store.BackendMemory
	}

	s := &session{settings: settings}
	if !interactive {
		closer, err := logging.Setup(settings.LogLevel, settings.LogFile)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, closer)
	}

	p, err := store.Load(settings)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.closers = append(s.closers, p)

	s.controller = app.New(p)
	if !interactive {
		s.controller.Init(ctx)
	}
	return s, nil
}

// writable refuses to continue when the stored list could not be read, since
// the next save would replace it.
func (s *session) writable() error {
	if err := s.controller.LastError(); err != nil {
		return fmt.Errorf("not writing over unreadable task list at %s: %w",
			s.controller.Persistence.Location(), err)
	}
	return nil
}

func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// refCompletions completes a task reference from the ids in the store, with
// the task text as the description.
func refCompletions(so *options.StoreOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		s, err := openSession(cmd.Context(), so, false)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer s.Close()

		var out []string
		for _, t := range s.controller.Tasks() {
			if strings.HasPrefix(t.ID, toComplete) {
				out = append(out, t.ID+"\t"+t.Text)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
