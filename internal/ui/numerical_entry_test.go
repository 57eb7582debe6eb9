package ui_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-schedule3d/internal/locale"
	"github.com/tartampluch/go-schedule3d/internal/ui"
)

func TestNumericalEntry_TypedRune(t *testing.T) {
	test.NewApp()
	entry := ui.NewNumericalEntry(0, 23, locale.New("en"))
	window := test.NewWindow(entry)
	defer window.Close()

	tests := []struct {
		name     string
		input    rune
		accepted bool
	}{
		{"Digit_Zero", '0', true},
		{"Digit_Nine", '9', true},
		{"Letter_a", 'a', false},
		{"Symbol_Dash", '-', false},
		{"Symbol_Space", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.SetText("")
			test.Type(entry, string(tt.input))

			if tt.accepted {
				assert.Equal(t, string(tt.input), entry.Text)
			} else {
				assert.Empty(t, entry.Text)
			}
		})
	}
}

func TestNumericalEntry_Keyboard(t *testing.T) {
	entry := ui.NewNumericalEntry(0, 23, locale.New("en"))

	assert.Equal(t, mobile.NumberKeyboard, entry.Keyboard())
}

func TestNumericalEntry_Value(t *testing.T) {
	test.NewApp()
	entry := ui.NewNumericalEntry(1, 24, locale.New("en"))

	tests := []struct {
		name    string
		text    string
		want    int
		wantErr string
	}{
		{"Lower bound", "1", 1, ""},
		{"Upper bound", "24", 24, ""},
		{"Below range", "0", 0, "Value must be between 1 and 24"},
		{"Above range", "25", 0, "Value must be between 1 and 24"},
		{"Empty", "", 0, "Please enter a whole number"},
		// SetText bypasses TypedRune, as a paste would.
		{"Pasted letters", "abc", 0, "Please enter a whole number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.SetText(tt.text)

			got, err := entry.Value()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumericalEntry_JapaneseMessages(t *testing.T) {
	test.NewApp()
	entry := ui.NewNumericalEntry(1, 12, locale.New("ja"))

	entry.SetValue(13)
	_, err := entry.Value()

	require.Error(t, err)
	assert.Equal(t, "1から12の範囲で入力してください", err.Error())
	assert.Equal(t, "13", entry.Text)
}
