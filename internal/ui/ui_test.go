package ui

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/engine"
	"github.com/tartampluch/go-schedule3d/internal/server"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// -----------------------------------------------------------------------------
// Test Setup Helpers
// -----------------------------------------------------------------------------

// setupTestApp initializes a headless Fyne app seeded with people A and B.
func setupTestApp(t *testing.T) (*ScheduleApp, *MockFetcher, *server.Server) {
	a := test.NewApp()
	clock := MockClock{CurrentTime: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	srv := server.New("0", server.Options{Clock: clock})
	fetcher := new(MockFetcher)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewScheduleApp(a, ctx, srv, fetcher, []string{"A", "B"})
	app.Clock = clock
	// Run() is skipped in tests.
	app.SetupI18n()
	return app, fetcher, srv
}

func standup(person string, start, end int) engine.EventInput {
	return engine.EventInput{
		Person: person, Year: 2024, Month: 5, Day: 10,
		StartHour: start, EndHour: end,
		Title: "Standup", Place: "Room1",
	}
}

// calendar fetches the published feed.
func calendar(t *testing.T, srv *server.Server) (int, string) {
	t.Helper()
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil))
	return w.Code, w.Body.String()
}

const teamVCF = "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:C\r\nEND:VCARD\r\n" +
	"BEGIN:VCARD\r\nVERSION:3.0\r\nFN:A\r\nEND:VCARD\r\n" +
	"BEGIN:VCARD\r\nVERSION:3.0\r\nFN:D\r\nEND:VCARD\r\n"

// -----------------------------------------------------------------------------
// Session operations
// -----------------------------------------------------------------------------

func TestAddEvent_RendersAndPublishes(t *testing.T) {
	app, _, srv := setupTestApp(t)

	code, _ := calendar(t, srv)
	require.Equal(t, http.StatusServiceUnavailable, code, "Nothing is published before the first change")

	_, err := app.AddEvent(standup("A", 9, 11))
	require.NoError(t, err)
	_, err = app.AddEvent(standup("B", 10, 12))
	require.NoError(t, err)

	scene := app.state().Scene
	assert.False(t, scene.Empty)
	assert.Equal(t, engine.Selection{Year: 2024, Month: 5, Week: 0}, scene.Selection)
	require.Len(t, scene.Overlaps, 1)
	assert.Equal(t, 10, scene.Overlaps[0].StartHour)
	assert.Equal(t, 11, scene.Overlaps[0].EndHour)
	assert.Len(t, scene.Segments, 3)

	code, body := calendar(t, srv)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "SUMMARY:Standup")
	assert.Contains(t, body, "CATEGORIES:B")
}

func TestAddEvent_RejectedLeavesStateUntouched(t *testing.T) {
	app, _, srv := setupTestApp(t)

	_, err := app.AddEvent(standup("Ghost", 9, 10))
	assert.ErrorIs(t, err, engine.ErrUnknownPerson)

	_, err = app.AddEvent(standup("A", 11, 10))
	assert.ErrorIs(t, err, engine.ErrEmptyRange)

	assert.Empty(t, app.state().Events)
	code, _ := calendar(t, srv)
	assert.Equal(t, http.StatusServiceUnavailable, code, "Failed input does not republish")
}

func TestDeleteEvent(t *testing.T) {
	app, _, srv := setupTestApp(t)
	_, err := app.AddEvent(standup("A", 9, 10))
	require.NoError(t, err)

	assert.ErrorIs(t, app.DeleteEvent(5), engine.ErrNoSuchEvent)
	require.NoError(t, app.DeleteEvent(0))

	st := app.state()
	assert.Empty(t, st.Events)
	assert.True(t, st.Scene.Empty)
	assert.Equal(t, config.FallbackNoticeEmpty, st.Scene.Notice)

	code, body := calendar(t, srv)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, config.StubVCalendar, body)
}

func TestSetVisible_HidesConflicts(t *testing.T) {
	app, _, _ := setupTestApp(t)
	for _, in := range []engine.EventInput{standup("A", 9, 11), standup("B", 10, 12)} {
		_, err := app.AddEvent(in)
		require.NoError(t, err)
	}

	app.SetVisible([]string{"A"})

	st := app.state()
	assert.Equal(t, []string{"A"}, st.Visible)
	assert.Len(t, st.Scene.Events, 1)
	assert.Empty(t, st.Scene.Overlaps)
	assert.Len(t, st.Events, 2, "Hidden events stay in the store")
}

func TestSelect(t *testing.T) {
	app, _, _ := setupTestApp(t)
	_, err := app.AddEvent(standup("A", 9, 10))
	require.NoError(t, err)
	_, err = app.AddEvent(engine.EventInput{Person: "B", Year: 2025, Month: 1, Day: 6, StartHour: 9, EndHour: 10, Title: "Kickoff"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		sel        engine.Selection
		want       engine.Selection
		wantEvents int
	}{
		{"Year only snaps to its first month", engine.Selection{Year: 2025}, engine.Selection{Year: 2025, Month: 1}, 1},
		{"Week containing the event", engine.Selection{Year: 2024, Month: 5, Week: 2}, engine.Selection{Year: 2024, Month: 5, Week: 2}, 1},
		{"Week without events", engine.Selection{Year: 2024, Month: 5, Week: 1}, engine.Selection{Year: 2024, Month: 5, Week: 1}, 0},
		{"Unknown week falls back to the whole month", engine.Selection{Year: 2024, Month: 5, Week: 9}, engine.Selection{Year: 2024, Month: 5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Select(tt.sel)

			scene := app.state().Scene
			assert.Equal(t, tt.want, scene.Selection)
			assert.Len(t, scene.Events, tt.wantEvents)
		})
	}
}

func TestImportPeople(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)
	fetcher.On("Fetch", mock.Anything, "https://contacts.example.com/team.vcf", "", "").
		Return(io.NopCloser(strings.NewReader(teamVCF)), nil)

	added, err := app.ImportPeople("https://contacts.example.com/team.vcf")

	require.NoError(t, err)
	assert.Equal(t, 2, added, "A is already known")
	assert.Equal(t, []string{"A", "B", "C", "D"}, app.state().People)
	fetcher.AssertExpectations(t)
}

func TestImportPeople_FetchError(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)
	expected := errors.New("connection refused")
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, expected)

	_, err := app.ImportPeople("https://contacts.example.com/team.vcf")

	assert.ErrorIs(t, err, expected)
	assert.Equal(t, []string{"A", "B"}, app.state().People)
}

// -----------------------------------------------------------------------------
// Localization
// -----------------------------------------------------------------------------

func TestSetLanguage_PersistsAndRelabels(t *testing.T) {
	app, _, _ := setupTestApp(t)
	_, err := app.AddEvent(standup("A", 9, 10))
	require.NoError(t, err)
	assert.Equal(t, "Whole month", app.state().Scene.Bucket.Label)

	app.SetLanguage("ja")

	assert.Equal(t, "ja", app.Preferences.String(config.PrefLanguage))
	assert.Equal(t, "全体", app.state().Scene.Bucket.Label)

	// A restart picks the saved language up.
	app.Translator = nil
	app.SetupI18n()
	assert.Equal(t, "ja", app.Translator.Language())
}

func TestSetupI18n_DefaultsToConfiguredLanguage(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Language = "ja"

	app.SetupI18n()

	assert.Equal(t, "ja", app.Translator.Language())
	assert.Equal(t, "人物", app.GetMsg(config.TKeyLblPeople))
}
