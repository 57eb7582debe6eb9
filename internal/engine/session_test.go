package engine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-schedule3d/internal/engine"
)

// standup is a valid input for person "A" on Friday 2024-05-10.
func standup() engine.EventInput {
	return engine.EventInput{
		Person: "A", Year: 2024, Month: 5, Day: 10,
		StartHour: 9, EndHour: 10,
		Title: "Standup", Place: "Room1",
	}
}

func TestNewSession_SeedsVisiblePeople(t *testing.T) {
	s := engine.NewSession("A", "", "B", "A")

	assert.Equal(t, []string{"A", "B"}, s.People(), "Blank and duplicate seeds are ignored")
	assert.Equal(t, []string{"A", "B"}, s.Visible(), "Seeds start visible")
	assert.Zero(t, s.Len())
}

func TestAddPerson(t *testing.T) {
	s := engine.NewSession()

	added, err := s.AddPerson("  Alice ")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"Alice"}, s.People(), "Names are trimmed")

	// Duplicate is a silent no-op.
	added, err = s.AddPerson("Alice")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, s.People(), 1)

	_, err = s.AddPerson("   ")
	assert.ErrorIs(t, err, engine.ErrEmptyName)
}

func TestSetVisible_KeepsRegistrationOrder(t *testing.T) {
	s := engine.NewSession("A", "B", "C")

	s.SetVisible([]string{"C", "Ghost", "A"})
	assert.Equal(t, []string{"A", "C"}, s.Visible(), "Unknown names dropped, registration order kept")

	s.SetVisible(nil)
	assert.Empty(t, s.Visible())

	_, err := s.AddPerson("D")
	require.NoError(t, err)
	assert.Equal(t, []string{"D"}, s.Visible(), "A new person becomes visible")
}

func TestAddEvent_DerivesWeekday(t *testing.T) {
	s := engine.NewSession("A")

	ev, err := s.AddEvent(standup())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.Equal(t, 4, ev.Weekday, "2024-05-10 is a Friday (Monday = 0)")
	assert.Equal(t, "Standup", ev.Title)
	assert.Equal(t, []engine.Event{ev}, s.Events())
}

func TestAddEvent_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *engine.EventInput)
		wantErr error
	}{
		{"UnknownPerson", func(in *engine.EventInput) { in.Person = "Z" }, engine.ErrUnknownPerson},
		{"MonthZero", func(in *engine.EventInput) { in.Month = 0 }, engine.ErrInvalidDate},
		{"MonthThirteen", func(in *engine.EventInput) { in.Month = 13 }, engine.ErrInvalidDate},
		{"Feb30", func(in *engine.EventInput) { in.Month, in.Day = 2, 30 }, engine.ErrInvalidDate},
		{"Feb29NonLeap", func(in *engine.EventInput) { in.Year, in.Month, in.Day = 2023, 2, 29 }, engine.ErrInvalidDate},
		{"YearTooLow", func(in *engine.EventInput) { in.Year = 1999 }, engine.ErrInvalidDate},
		{"StartNegative", func(in *engine.EventInput) { in.StartHour = -1 }, engine.ErrInvalidHour},
		{"StartTooLate", func(in *engine.EventInput) { in.StartHour, in.EndHour = 24, 24 }, engine.ErrInvalidHour},
		{"EndTooLate", func(in *engine.EventInput) { in.EndHour = 25 }, engine.ErrInvalidHour},
		{"ZeroDuration", func(in *engine.EventInput) { in.StartHour, in.EndHour = 10, 10 }, engine.ErrEmptyRange},
		{"Reversed", func(in *engine.EventInput) { in.StartHour, in.EndHour = 11, 10 }, engine.ErrEmptyRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := engine.NewSession("A")
			in := standup()
			tt.mutate(&in)

			_, err := s.AddEvent(in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, s.Len(), "Rejected events must not be stored")
		})
	}
}

func TestAddEvent_AcceptsBoundaries(t *testing.T) {
	s := engine.NewSession("A")
	in := standup()
	in.Year, in.Month, in.Day = 2024, 2, 29
	in.StartHour, in.EndHour = 0, 24

	_, err := s.AddEvent(in)
	assert.NoError(t, err)
}

func TestDeleteEvent_Positional(t *testing.T) {
	s := engine.NewSession("A")
	first, _ := s.AddEvent(standup())
	in := standup()
	in.Title = "Review"
	second, _ := s.AddEvent(in)

	removed, err := s.DeleteEvent(0)
	require.NoError(t, err)
	assert.Equal(t, first.ID, removed.ID)
	assert.Equal(t, []engine.Event{second}, s.Events())

	_, err = s.DeleteEvent(5)
	assert.ErrorIs(t, err, engine.ErrNoSuchEvent)
	_, err = s.DeleteEvent(-1)
	assert.ErrorIs(t, err, engine.ErrNoSuchEvent)
}

func TestDeleteEventByID(t *testing.T) {
	s := engine.NewSession("A")
	ev, _ := s.AddEvent(standup())

	_, err := s.DeleteEventByID(uuid.New())
	assert.ErrorIs(t, err, engine.ErrNoSuchEvent)

	removed, err := s.DeleteEventByID(ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev, removed)
	assert.Zero(t, s.Len())
}

func TestEvents_ReturnsCopy(t *testing.T) {
	s := engine.NewSession("A")
	_, _ = s.AddEvent(standup())

	events := s.Events()
	events[0].Title = "Tampered"

	assert.Equal(t, "Standup", s.Events()[0].Title)
}
