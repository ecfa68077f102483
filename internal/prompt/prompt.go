package prompt

import "github.com/charmbracelet/huh"

// Prompter is the console ask capability consumed by store
// operations. Implementations block until the user gives a
// recognizable answer.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(title, description string) (bool, error)
	// Choose asks the user to pick one of options and returns its index.
	Choose(title string, options []string) (int, error)
}

// Console prompts on the terminal via huh forms. huh re-asks on
// unrecognized input, so no retry loop is needed here.
type Console struct{}

func (Console) Confirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

func (Console) Choose(title string, options []string) (int, error) {
	opts := make([]huh.Option[int], len(options))
	for i, option := range options {
		opts[i] = huh.NewOption(option, i)
	}

	var choice int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(opts...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return 0, err
	}
	return choice, nil
}
