package options

import (
	"errors"
	"strings"
)

// AddOptions
type AddOptions struct {
	Text string
}

// SetText joins the positional args into the task text.
func (o *AddOptions) SetText(args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return errors.New("requires task text")
	}
	o.Text = text
	return nil
}
