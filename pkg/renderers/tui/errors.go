package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or chose to
	// quit the wizard.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoStepPrompt is returned when a wizard step has no prompt.
	ErrNoStepPrompt = errors.New("tui: no prompt for step")
)
