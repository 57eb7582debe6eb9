package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/engine"
	"github.com/tartampluch/go-schedule3d/internal/holiday"
	"github.com/tartampluch/go-schedule3d/internal/locale"
	"github.com/tartampluch/go-schedule3d/internal/server"
	"github.com/tartampluch/go-schedule3d/internal/ui"
)

// main delegates to runMain so that deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	configPath := flag.String(config.FlagConfig, "", config.FlagDescConfig)
	headless := flag.Bool(config.FlagHeadless, false, config.FlagDescHeadless)
	setPassword := flag.Bool(config.FlagSetPassword, false, config.FlagDescSetPassword)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging & Settings
	// -------------------------------------------------------------------------
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	settings, err := loadSettings(*configPath)
	if err != nil {
		slog.Error(config.ErrSettingsLoad,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	if *setPassword {
		if err := storePassword(settings.AuthUser, os.Stdin); err != nil {
			slog.Error(config.ErrKeyringStore,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyError, err,
			)
			return config.ExitCodeError
		}
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, settings, *headless); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the holiday calendar, the HTTP server and, unless headless, the
// desktop window.
func run(ctx context.Context, settings *config.Settings, headless bool) error {
	fetcher := engine.NewHTTPFetcher()

	holidays, feeds, err := holiday.FromSettings(ctx, settings.Holidays, fetcher)
	if err != nil {
		return err
	}
	if err := startRefresher(ctx, settings.Holidays.Refresh, feeds); err != nil {
		return err
	}

	seed := seedPeople(ctx, settings, fetcher)
	srv := server.New(settings.Port, serverOptions(settings, seed, holidays))

	if headless {
		slog.Info(config.MsgHeadless, config.LogKeyComponent, config.CompMain)
		return srv.Start(ctx)
	}

	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	gui := ui.NewScheduleApp(a, ctx, srv, fetcher, seed)
	gui.Holidays = holidays
	gui.Language = settings.Language

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		fyne.Do(a.Quit)
	}()

	// Blocks until the main window closes.
	gui.Run()
	return nil
}

func serverOptions(settings *config.Settings, seed []string, holidays engine.HolidayChecker) server.Options {
	opts := server.Options{
		SeedPeople: seed,
		Holidays:   holidays,
		Translator: locale.New(settings.Language),
		AuthUser:   settings.AuthUser,
	}
	if settings.AuthUser == "" {
		return opts
	}

	pass, err := server.LookupPassword(settings.AuthUser)
	if err != nil {
		slog.Warn(config.MsgPassFail,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyUser, settings.AuthUser,
			config.LogKeyError, err,
		)
		return opts
	}
	opts.AuthPass = pass
	return opts
}

// startRefresher reloads the configured holiday feeds on their cron schedule.
func startRefresher(ctx context.Context, spec string, feeds []*holiday.Feed) error {
	if len(feeds) == 0 {
		return nil
	}
	sources := make([]holiday.Reloader, len(feeds))
	for i, f := range feeds {
		sources[i] = f
	}
	r, err := holiday.NewRefresher(spec, sources...)
	if err != nil {
		return err
	}
	go r.Run(ctx)
	return nil
}

// seedPeople extends the configured people with the contacts file, if any.
// A broken contacts source only costs the extra names.
func seedPeople(ctx context.Context, settings *config.Settings, f engine.Fetcher) []string {
	if settings.ContactsURL == "" {
		return settings.People
	}

	s := engine.NewSession(settings.People...)
	added, err := engine.ImportPeopleInto(ctx, s, f, settings.ContactsURL)
	if err != nil {
		slog.Warn(config.ErrPeopleImport,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyURL, settings.ContactsURL,
			config.LogKeyError, err,
		)
		return settings.People
	}

	slog.Info(config.MsgContactsSeeded,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyCount, added,
	)
	return s.People()
}

// storePassword reads one line from r and saves it as user's basic-auth password.
func storePassword(user string, r io.Reader) error {
	if user == "" {
		return errors.New(config.ErrNoAuthUser)
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", config.ErrPasswordRead, err)
	}
	pass := strings.TrimRight(line, "\r\n")
	if pass == "" {
		return errors.New(config.ErrPasswordRead)
	}

	if err := server.StorePassword(user, pass); err != nil {
		return err
	}
	slog.Info(config.MsgPasswordStored,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyUser, user,
	)
	return nil
}

// loadSettings reads the settings file, creating it with defaults on first run.
func loadSettings(path string) (*config.Settings, error) {
	if path == "" {
		p, err := config.DefaultSettingsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	s, err := config.LoadSettings(path)
	if err != nil && s != nil {
		// Defaults could not be written back; they are still usable.
		slog.Warn(config.ErrSettingsSave,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyPath, path,
			config.LogKeyError, err,
		)
		return s, nil
	}
	return s, err
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger to write JSON to stdout and
// to a log file in the user cache dir.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(appDir, config.LogFileName), nil
}
