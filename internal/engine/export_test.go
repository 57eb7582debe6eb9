package engine_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/engine"
)

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// -----------------------------------------------------------------------------
// iCalendar export
// -----------------------------------------------------------------------------

func TestExportICS_Empty(t *testing.T) {
	data, err := engine.ExportICS(nil, MockClock{CurrentTime: time.Now()})

	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestExportICS_Events(t *testing.T) {
	s := engine.NewSession("A", "B")
	first, err := s.AddEvent(standup())
	require.NoError(t, err)
	_, err = s.AddEvent(engine.EventInput{Person: "B", Year: 2024, Month: 5, Day: 31, StartHour: 22, EndHour: 24, Title: "Deploy"})
	require.NoError(t, err)

	clock := MockClock{CurrentTime: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	data, err := engine.ExportICS(s.Events(), clock)
	require.NoError(t, err)

	icsStr := string(data)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR")
	assert.Contains(t, icsStr, "SUMMARY:Standup")
	assert.Contains(t, icsStr, "LOCATION:Room1")
	assert.Contains(t, icsStr, "DTSTART:20240510T090000")
	assert.Contains(t, icsStr, "DTEND:20240510T100000")
	assert.Contains(t, icsStr, "DTEND:20240601T000000", "End hour 24 rolls over to the next day")
	assert.Contains(t, icsStr, "20240501T080000Z", "DTSTAMP is written in UTC")
	assert.Contains(t, icsStr, "UID:"+first.ID.String()+"@"+config.ICalDomain)
	assert.Equal(t, 2, strings.Count(icsStr, "BEGIN:VEVENT"))

	// The output must decode with the same library.
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "A", events[0].Props.Get(config.PropCategories).Value)
	assert.Nil(t, events[1].Props.Get(config.PropLocation), "Empty place is omitted")
}

// -----------------------------------------------------------------------------
// vCard import
// -----------------------------------------------------------------------------

const contactsVCF = `BEGIN:VCARD
VERSION:3.0
FN:Haruto
END:VCARD
BEGIN:VCARD
VERSION:3.0
N:Doe;Jane;;;
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Yutaro
END:VCARD
`

func TestImportPeople(t *testing.T) {
	names, err := engine.ImportPeople(context.Background(), strings.NewReader(contactsVCF))

	require.NoError(t, err)
	assert.Equal(t, []string{"Haruto", "Jane Doe", "Yutaro"}, names, "FN preferred, N as fallback")
}

func TestImportPeople_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.ImportPeople(ctx, strings.NewReader(contactsVCF))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestImportPeopleInto_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(contactsVCF), 0o600))

	s := engine.NewSession("Haruto")
	added, err := engine.ImportPeopleInto(context.Background(), s, nil, path)

	require.NoError(t, err)
	assert.Equal(t, 2, added, "Already-known people are not counted")
	assert.Equal(t, []string{"Haruto", "Jane Doe", "Yutaro"}, s.People())
}

func TestImportPeopleInto_Remote(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://contacts.example.com/team.vcf", "", "").
		Return(io.NopCloser(strings.NewReader(contactsVCF)), nil)

	s := engine.NewSession()
	added, err := engine.ImportPeopleInto(context.Background(), s, fetcher, "https://contacts.example.com/team.vcf")

	require.NoError(t, err)
	assert.Equal(t, 3, added)
	fetcher.AssertExpectations(t)
}

func TestImportPeopleInto_FetchError(t *testing.T) {
	expected := errors.New("network unreachable")
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, expected)

	s := engine.NewSession()
	_, err := engine.ImportPeopleInto(context.Background(), s, fetcher, "https://contacts.example.com/team.vcf")

	assert.ErrorIs(t, err, expected)
	assert.Empty(t, s.People())
}

func TestSession_AddPeople(t *testing.T) {
	s := engine.NewSession("A")

	added := s.AddPeople([]string{"B", " ", "A", "C", "B"})

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"A", "B", "C"}, s.People())
	assert.Equal(t, []string{"A", "B", "C"}, s.Visible())
}
