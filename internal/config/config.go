package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Schedule3D/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Schedule3D"
	AppID             = "com.github.tartampluch.go-schedule3d"
	KeyringService    = "com.github.tartampluch.go-schedule3d"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "settings.yaml"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and the settings file.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion         = "version"
	FlagDebug           = "debug"
	FlagConfig          = "config"
	FlagHeadless        = "headless"
	FlagSetPassword     = "set-password"
	FlagDescVersion     = "Show application version and exit"
	FlagDescDebug       = "Enable debug logging to stdout"
	FlagDescConfig      = "Path to the YAML settings file (defaults to the user config dir)"
	FlagDescHeadless    = "Serve the HTTP API only, without the desktop window"
	FlagDescSetPassword = "Read the basic-auth password for auth_user from stdin, store it in the OS keyring and exit"
	MsgVersionOutput    = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Scheduling Domain
// -----------------------------------------------------------------------------

const (
	// Accepted input ranges of the add-event action.
	MinYear      = 2000
	MaxYear      = 2100
	MinStartHour = 0
	MaxStartHour = 23
	MinEndHour   = 1
	MaxEndHour   = 24

	// Default values pre-filled in the add-event form.
	DefaultStartHour  = 9
	DefaultEndHour    = 10
	DefaultEventTitle = "Meeting"
	DefaultEventPlace = "Room A"

	// WholeMonthWeek is the week index of the synthetic whole-month bucket.
	WholeMonthWeek = 0

	// DaysPerWeek is the width of a calendar row.
	DaysPerWeek = 7
)

// DefaultPeople seeds every new session.
var DefaultPeople = []string{"Haruto", "Yutaro", "Akihito"}

// -----------------------------------------------------------------------------
// Scene Layout
// -----------------------------------------------------------------------------

const (
	// FormatPersonColor expects the hue in degrees.
	FormatPersonColor = "hsl(%d,70%%,60%%)"
	HueCircle         = 360

	ColorHoliday  = "skyblue"
	ColorConflict = "#FF4136"

	WidthEvent    = 10
	WidthConflict = 15

	// Axis configuration of the 3D scene.
	HourAxisMin   = 0
	HourAxisMax   = 24
	HourAxisDtick = 4
	DayAxisDtick  = 1
)

// -----------------------------------------------------------------------------
// Preferences (Fyne)
// -----------------------------------------------------------------------------

const (
	PrefLanguage = "language"
	PrefLastRun  = "last_run_version"
	PrefWindowW  = "window_width"
	PrefWindowH  = "window_height"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "ja"}

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	MainWindowWidth  = 1100
	MainWindowHeight = 760

	// SplitOffset is the share of the window given to the input forms.
	SplitOffset = 0.38

	PlaceholderPerson = "Name"
	PlaceholderVCard  = "/path/to/contacts.vcf"
	ListPlaceholder   = "Item"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle          = "win_title"
	TKeyLblPeople         = "lbl_people"
	TKeyLblNewPerson      = "lbl_new_person"
	TKeyBtnAddPerson      = "btn_add_person"
	TKeyLblVisible        = "lbl_visible_people"
	TKeyBtnImportVCard    = "btn_import_vcard"
	TKeyBtnBrowse         = "btn_browse"
	TKeyLblNewEvent       = "lbl_new_event"
	TKeyLblPerson         = "lbl_person"
	TKeyLblYear           = "lbl_year"
	TKeyLblMonth          = "lbl_month"
	TKeyLblDay            = "lbl_day"
	TKeyLblStart          = "lbl_start_hour"
	TKeyLblEnd            = "lbl_end_hour"
	TKeyLblTitle          = "lbl_title"
	TKeyLblPlace          = "lbl_place"
	TKeyLblNote           = "lbl_note"
	TKeyBtnAddEvent       = "btn_add_event"
	TKeyLblEvents         = "lbl_events"
	TKeyBtnDelete         = "btn_delete"
	TKeyLblView           = "lbl_view"
	TKeyLblWeek           = "lbl_week"
	TKeyLblScene          = "lbl_scene"
	TKeyLblConflicts      = "lbl_conflicts" // Requires Count
	TKeyLblLanguage       = "lbl_language"
	TKeyFormatEventRow    = "format_event_row"   // Requires Year, Month, Day, Start, End, Person, Title
	TKeyFormatOverlapRow  = "format_overlap_row" // Requires Day, Start, End, PersonA, PersonB
	TKeyWholeMonth        = "bucket_whole_month"
	TKeyWeekBucket        = "bucket_week" // Requires Week, Start, End
	TKeyTooltipEvent      = "tooltip_event"
	TKeyTooltipOverlap    = "tooltip_overlap"
	TKeyNoticeEmpty       = "notice_empty_store"
	TKeyNoticeNoMatch     = "notice_no_match"
	TKeyAxisDate          = "axis_date"
	TKeyAxisPerson        = "axis_person"
	TKeyAxisTime          = "axis_time"
	TKeyErrNumber         = "err_number"
	TKeyErrRange          = "err_range"       // Requires Min, Max
	TKeyPrefixWeekday     = "weekday_"        // Suffixed with 0 (Monday) .. 6 (Sunday)
	TKeyNotifImported     = "notif_imported"  // Requires Count
	TKeyNotifPortBusy     = "notif_port_busy" // Requires Port
	TKeyTitleInputError   = "title_input_error"
	TKeyTitleStartupError = "title_startup_error"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort        = "18081"
	DefaultLanguage    = "en"
	DefaultHolidayArea = HolidayAreaJapan
	HolidayAreaJapan   = "jp"
	HolidayAreaNone    = "none"

	// DefaultHolidayRefresh is the cron schedule for reloading holiday feeds.
	DefaultHolidayRefresh = "@daily"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Schedule3D//Engine//EN"
	ICalCalName = "Schedule"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goschedule3d"

	ICalParamValue = "VALUE"
	ICalValueDate  = "DATE"

	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropLocation   = "LOCATION"
	PropDesc       = "DESCRIPTION"
	PropCategories = "CATEGORIES"
	PropDTStart    = "DTSTART"
	PropDTEnd      = "DTEND"
	PropDTStamp    = "DTSTAMP"

	VCardFN = "FN"

	// ICalFloatingLayout renders wall-clock date-times without a zone.
	ICalFloatingLayout = "20060102T150405"
	FormatUID          = "%s@%s"
)

// StubVCalendar is the minimal valid iCalendar object used when no events exist.
const StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 32 * 1024 * 1024 // 32MB
	MaxRequestBodySize  = 64 * 1024
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"
	SessionCookieName   = "schedule3d_session"
	SessionCookieMaxAge = 12 * time.Hour
	BasicAuthRealm      = `Basic realm="Go Schedule3D", charset="UTF-8"`
)

// -----------------------------------------------------------------------------
// HTTP Routes
// -----------------------------------------------------------------------------

const (
	RouteHealth        = "GET /health"
	RoutePeopleList    = "GET /api/people"
	RoutePeopleAdd     = "POST /api/people"
	RoutePeopleVisible = "PUT /api/people/visible"
	RouteEventsList    = "GET /api/events"
	RouteEventsAdd     = "POST /api/events"
	RouteEventsDelete  = "DELETE /api/events/{id}"
	RouteWeeks         = "GET /api/weeks"
	RouteScene         = "GET /api/scene"
	RouteCalendar      = "/calendar.ics"
	PathHealth         = "/health"
	PathParamID        = "id"

	QueryYear  = "year"
	QueryMonth = "month"
	QueryWeek  = "week"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAuthenticate    = "WWW-Authenticate"
	HeaderAcceptLanguage  = "Accept-Language"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrEmptyName      = "person name is empty"
	ErrUnknownPerson  = "unknown person"
	ErrInvalidDate    = "invalid calendar date"
	ErrInvalidHour    = "hour out of range"
	ErrEmptyRange     = "start hour must be before end hour"
	ErrNoSuchEvent    = "no such event"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrICalDecode     = "failed to decode iCalendar data"
	ErrRRuleParse     = "failed to parse holiday rule"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrConfigDir      = "could not determine user config dir"
	ErrCreateDir      = "could not create app directory"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrSettingsPath   = "settings path is empty"
	ErrSettingsNil    = "settings are nil"
	ErrSettingsLoad   = "failed to load settings"
	ErrSettingsSave   = "failed to save settings"
	ErrHolidayFeed    = "failed to load holiday feed"
	ErrHolidayArea    = "unknown holiday area"
	ErrSchedule       = "invalid refresh schedule"
	ErrPeopleImport   = "failed to import people"
	ErrBadRequestBody = "malformed request body"
	ErrBadQuery       = "malformed query parameter"
	ErrKeyringLookup  = "failed to read password from keyring"
	ErrKeyringStore   = "failed to store password in keyring"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrFetchStatus    = "server returned unexpected status"
	ErrFetchNetwork   = "network error during fetch"
	ErrFetchRequest   = "failed to create request"
	ErrNoAuthUser     = "auth_user is not set in the settings file"
	ErrPasswordRead   = "failed to read password from stdin"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgUnauthorized = "Unauthorized"
	HTTPMsgOK           = "OK"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults (English, used when no translation is available)
// -----------------------------------------------------------------------------

const (
	FallbackWholeMonth     = "Whole month"
	FallbackWeekBucket     = "Week %d (%d-%d)"
	FallbackNoticeEmpty    = "Please add at least one event first."
	FallbackNoticeNoMatch  = "No events match the selected period and people."
	FallbackAxisDate       = "Date"
	FallbackAxisPerson     = "Person"
	FallbackAxisTime       = "Time"
	FallbackTooltipEvent   = "<b>%s</b><br>Person: %s<br>Date: %04d-%02d-%02d (%s)<br>Time: %d:00-%d:00<br>Place: %s<br>Note: %s"
	FallbackTooltipOverlap = "<b>Overlap</b><br>%s: %s (%d:00-%d:00)<br>%s: %s (%d:00-%d:00)<br>Overlap: %d:00-%d:00<br>Date: %04d-%02d-%02d (%s)"
)

// FallbackWeekdays holds short weekday names, Monday first.
var FallbackWeekdays = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStop        = "Application stopped gracefully"
	MsgAppStarting    = "Starting application"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgPersonAdded    = "Person added"
	MsgPersonExists   = "Person already registered, ignoring"
	MsgEventAdded     = "Event added"
	MsgEventDeleted   = "Event deleted"
	MsgEventRejected  = "Event rejected"
	MsgRender         = "Scene rendered"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgPeopleImported = "People imported"
	MsgHolidaysLoaded = "Holiday feed loaded"
	MsgSkippedHoliday = "Skipping holiday entry without start date"
	MsgHolidayYear    = "Holiday year computed"
	MsgFeedRefresh    = "Holiday feeds reloaded"
	MsgFeedRefreshErr = "Holiday feed reload failed, keeping previous data"
	MsgSettingsCreate = "Settings file not found, writing defaults"
	MsgSessionCreated = "Session created"
	MsgAuthEnabled    = "HTTP basic auth enabled"
	MsgPassFail       = "Password retrieval failed (auth disabled)"
	MsgFetchStart     = "Initiating download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchOK        = "Download started"
	MsgOpenWindow     = "Opening main window"
	MsgInputRejected  = "User input rejected"
	MsgLanguageSet    = "UI language changed"
	MsgPublishFailed  = "Failed to publish calendar"
	MsgPasswordStored = "Password stored in keyring"
	MsgHeadless       = "Running headless, desktop window disabled"
	MsgContactsSeeded = "Seed people extended from contacts"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyUser      = "user"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeySession   = "session"
	LogKeyEventID   = "event_id"
	LogKeyYear      = "year"
	LogKeyMonth     = "month"
	LogKeyWeek      = "week"
	LogKeySegments  = "segments"
	LogKeyOverlaps  = "overlaps"
	LogKeyPath      = "path"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompEngine   = "engine"
	CompSession  = "session"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompHoliday  = "holiday"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
