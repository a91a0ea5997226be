package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NumberInput wraps bubbles/textinput to accept digits only.
type NumberInput struct {
	Model textinput.Model
}

// NewNumberInput creates a focused input accepting up to maxDigits digits.
func NewNumberInput(placeholder string, maxDigits int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if maxDigits > 0 {
		ti.CharLimit = maxDigits
	}
	return NumberInput{Model: ti}
}

// Init returns the initial command.
func (t NumberInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards messages to the input, dropping non-digit characters.
func (t NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input.
func (t NumberInput) View() string {
	return t.Model.View()
}

// Value returns the typed number; false when the input is empty.
func (t NumberInput) Value() (int, bool) {
	n, err := strconv.Atoi(t.Model.Value())
	if err != nil {
		return 0, false
	}
	return n, true
}

// Reset clears the input.
func (t *NumberInput) Reset() {
	t.Model.SetValue("")
}
