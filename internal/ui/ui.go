package ui

import (
	"context"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/engine"
	"github.com/tartampluch/go-schedule3d/internal/holiday"
	"github.com/tartampluch/go-schedule3d/internal/locale"
	"github.com/tartampluch/go-schedule3d/internal/server"
)

// ScheduleApp owns the desktop session and keeps the window, the rendered
// scene and the published calendar in step with it.
type ScheduleApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Translator  *locale.Translator
	Ctx         context.Context

	Server   *server.Server
	Fetcher  engine.Fetcher
	Clock    engine.Clock
	Holidays engine.HolidayChecker

	// Language is used until the user picks one in the window.
	Language string

	// mu guards the session and the last render; vCard imports finish off
	// the UI goroutine.
	mu        sync.Mutex
	session   *engine.Session
	selection engine.Selection
	scene     engine.Scene

	views *mainViews
}

// viewState is a consistent copy of what the window displays.
type viewState struct {
	People  []string
	Visible []string
	Events  []engine.Event
	Scene   engine.Scene
}

// NewScheduleApp constructs the application and wires dependencies.
func NewScheduleApp(a fyne.App, ctx context.Context, srv *server.Server, fetcher engine.Fetcher, seed []string) *ScheduleApp {
	return &ScheduleApp{
		App:         a,
		Preferences: a.Preferences(),
		Ctx:         ctx,
		Server:      srv,
		Fetcher:     fetcher,
		Clock:       engine.RealClock{},
		Holidays:    holiday.None{},
		Language:    config.DefaultLanguage,
		session:     engine.NewSession(seed...),
	}
}

// Run launches the HTTP server and the main UI loop.
func (app *ScheduleApp) Run() {
	app.SetupI18n()
	go app.serve()
	app.ShowMainWindow()
	app.App.Run()
}

func (app *ScheduleApp) serve() {
	if app.Server == nil {
		return
	}
	if err := app.Server.Start(app.Ctx); err != nil {
		slog.Error(config.ErrServerStartup,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)

		fyne.Do(func() {
			app.App.SendNotification(fyne.NewNotification(
				app.GetMsg(config.TKeyTitleStartupError),
				app.Translator.Template(config.TKeyNotifPortBusy, map[string]any{"Port": app.Server.Port})))
		})
	}
}

// SetupI18n loads the translator in the saved language.
func (app *ScheduleApp) SetupI18n() {
	app.Translator = locale.New(app.Preferences.StringWithFallback(config.PrefLanguage, app.Language))
}

// GetMsg translates key, returning the key when no translator is loaded.
func (app *ScheduleApp) GetMsg(key string) string {
	if app.Translator == nil {
		return key
	}
	return app.Translator.Msg(key)
}

// SetLanguage switches the UI language, persists it and rebuilds the window.
func (app *ScheduleApp) SetLanguage(lang string) {
	app.Translator.SetLanguage(lang)
	app.Preferences.SetString(config.PrefLanguage, app.Translator.Language())

	slog.Info(config.MsgLanguageSet,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyLang, app.Translator.Language())

	if app.Window == nil {
		app.rerender()
		return
	}
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetContent(app.buildContent())
}

// AddPerson registers name in the desktop session.
func (app *ScheduleApp) AddPerson(name string) (bool, error) {
	var added bool
	err := app.apply(func(s *engine.Session) error {
		var err error
		added, err = s.AddPerson(name)
		return err
	})
	return added, err
}

// ImportPeople loads a vCard file or URL and registers every contact. The
// download happens outside the session lock.
func (app *ScheduleApp) ImportPeople(location string) (int, error) {
	names, err := engine.LoadPeople(app.Ctx, app.Fetcher, location)
	if err != nil {
		return 0, err
	}
	var added int
	err = app.apply(func(s *engine.Session) error {
		added = s.AddPeople(names)
		return nil
	})
	return added, err
}

// SetVisible replaces the visible people.
func (app *ScheduleApp) SetVisible(names []string) {
	_ = app.apply(func(s *engine.Session) error {
		s.SetVisible(names)
		return nil
	})
}

// AddEvent validates and stores a new event.
func (app *ScheduleApp) AddEvent(in engine.EventInput) (engine.Event, error) {
	var ev engine.Event
	err := app.apply(func(s *engine.Session) error {
		var err error
		ev, err = s.AddEvent(in)
		return err
	})
	return ev, err
}

// DeleteEvent removes the event at index.
func (app *ScheduleApp) DeleteEvent(index int) error {
	return app.apply(func(s *engine.Session) error {
		_, err := s.DeleteEvent(index)
		return err
	})
}

// Select changes the displayed period.
func (app *ScheduleApp) Select(sel engine.Selection) {
	_ = app.apply(func(*engine.Session) error {
		app.selection = sel
		return nil
	})
}

// apply mutates the session, then re-renders and republishes. Nothing is
// re-rendered when fn fails.
func (app *ScheduleApp) apply(fn func(s *engine.Session) error) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if err := fn(app.session); err != nil {
		return err
	}
	app.renderLocked()
	return nil
}

// rerender refreshes the scene without touching the session.
func (app *ScheduleApp) rerender() {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.renderLocked()
}

func (app *ScheduleApp) renderLocked() {
	events := app.session.Events()
	app.scene = engine.Render(engine.RenderInput{
		Events:    events,
		Visible:   app.session.Visible(),
		Selection: app.selection,
		Holidays:  app.Holidays,
		Labels:    app.labels(),
	})
	if !app.scene.Empty {
		app.selection = app.scene.Selection
	}

	slog.Debug(config.MsgRender,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyYear, app.selection.Year,
		config.LogKeyMonth, app.selection.Month,
		config.LogKeyWeek, app.selection.Week,
		config.LogKeySegments, len(app.scene.Segments),
		config.LogKeyOverlaps, len(app.scene.Overlaps))

	app.publish(events)
}

// publish exports the whole store, not just the selected period.
func (app *ScheduleApp) publish(events []engine.Event) {
	if app.Server == nil {
		return
	}
	data, err := engine.ExportICS(events, app.Clock)
	if err != nil {
		slog.Error(config.MsgPublishFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	app.Server.Update(data)
}

func (app *ScheduleApp) labels() locale.Labels {
	if app.Translator == nil {
		app.Translator = locale.New(app.Language)
	}
	return locale.Labels{T: app.Translator}
}

func (app *ScheduleApp) state() viewState {
	app.mu.Lock()
	defer app.mu.Unlock()
	return viewState{
		People:  app.session.People(),
		Visible: app.session.Visible(),
		Events:  app.session.Events(),
		Scene:   app.scene,
	}
}
