package cmd

import "github.com/pterm/pterm"

type prompter interface {
	Text(label string) (string, error)
	Select(label string, options []string) (string, error)
	Warn(msg string)
}

type ptermPrompter struct{}

func (ptermPrompter) Text(label string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultText(label).Show()
}

func (ptermPrompter) Select(label string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithDefaultText(label).WithOptions(options).Show()
}

func (ptermPrompter) Warn(msg string) {
	pterm.Error.Println(msg)
}
