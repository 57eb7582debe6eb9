package ui

import (
	"errors"
	"strconv"
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/locale"
)

// NumericalEntry is an Entry that only accepts digits and validates that its
// value lies within [Min, Max].
type NumericalEntry struct {
	widget.Entry
	Min, Max int
}

// NewNumericalEntry creates an entry bounded to [lo, hi]. Validation messages
// are translated with t.
func NewNumericalEntry(lo, hi int, t *locale.Translator) *NumericalEntry {
	entry := &NumericalEntry{Min: lo, Max: hi}
	entry.ExtendBaseWidget(entry)
	entry.Validator = func(s string) error {
		_, err := entry.parse(s, t)
		return err
	}
	return entry
}

// TypedRune drops anything but digits. Pasted text still goes through the
// Validator.
func (e *NumericalEntry) TypedRune(r rune) {
	if r >= '0' && r <= '9' {
		e.Entry.TypedRune(r)
	}
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// Value returns the validated integer.
func (e *NumericalEntry) Value() (int, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(e.Text))
}

// SetValue replaces the text with v.
func (e *NumericalEntry) SetValue(v int) {
	e.SetText(strconv.Itoa(v))
}

func (e *NumericalEntry) parse(s string, t *locale.Translator) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(t.Msg(config.TKeyErrNumber))
	}
	if v < e.Min || v > e.Max {
		return 0, errors.New(t.Template(config.TKeyErrRange, map[string]any{"Min": e.Min, "Max": e.Max}))
	}
	return v, nil
}
