package holiday_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/holiday"
)

type MockReloader struct {
	mock.Mock
}

func (m *MockReloader) Reload(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockReloader) Location() string {
	return m.Called().String(0)
}

func TestNewRefresher_InvalidSchedule(t *testing.T) {
	_, err := holiday.NewRefresher("every full moon")

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSchedule)
}

func TestNewRefresher_AcceptsDescriptors(t *testing.T) {
	for _, spec := range []string{config.DefaultHolidayRefresh, "@every 1h", "0 3 * * *"} {
		_, err := holiday.NewRefresher(spec)
		assert.NoError(t, err, spec)
	}
}

func TestRefresher_ReloadAll(t *testing.T) {
	good := new(MockReloader)
	good.On("Reload", mock.Anything).Return(nil)

	bad := new(MockReloader)
	bad.On("Reload", mock.Anything).Return(errors.New("unreachable"))
	bad.On("Location").Return("https://example.com/broken.ics")

	r, err := holiday.NewRefresher(config.DefaultHolidayRefresh, good, bad)
	require.NoError(t, err)

	assert.Equal(t, 1, r.ReloadAll(context.Background()))
	good.AssertExpectations(t)
	bad.AssertExpectations(t)
}

func TestRefresher_RunStopsOnCancel(t *testing.T) {
	r, err := holiday.NewRefresher(config.DefaultHolidayRefresh)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
