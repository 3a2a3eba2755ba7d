package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// runField runs a single-field form.
func runField(field huh.Field) error {
	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// AskString prompts for one line of text. An empty answer falls back to def;
// required rejects an empty result.
func AskString(title, placeholder, def string, required bool) (string, error) {
	value := def
	err := runField(huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value))
	if err != nil {
		return "", err
	}
	if required && value == "" {
		return "", fmt.Errorf("%s is required", title)
	}
	return value, nil
}

// AskConfirm prompts for a yes/no answer.
func AskConfirm(title string, def bool) (bool, error) {
	confirmed := def
	err := runField(huh.NewConfirm().
		Title(title).
		Value(&confirmed))
	return confirmed, err
}

// AskMulti prompts for any number of choices from options.
func AskMulti(title string, options []string) ([]string, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("no options provided")
	}

	choices := make([]huh.Option[string], len(options))
	for i, opt := range options {
		choices[i] = huh.NewOption(opt, opt)
	}

	var selected []string
	err := runField(huh.NewMultiSelect[string]().
		Title(title).
		Options(choices...).
		Value(&selected))
	return selected, err
}

// ShouldPrompt reports whether interactive prompts make sense: stdin must be
// a terminal and we must not be running under CI.
func ShouldPrompt() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "BUILDKITE"} {
		if os.Getenv(name) != "" {
			return false
		}
	}
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
