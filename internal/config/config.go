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
var UserAgent = "Go-AgeCalc/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go AgeCalc"
	AppID             = "com.github.tartampluch.go-agecalc"
	KeyringService    = "com.github.tartampluch.go-agecalc"
	KeyringAPIKeyUser = "insight-api-key"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	CLIName           = "go-agecalc"
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
	// Used for logs and exported calendars.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdCalc    = "calc"
	CmdServe   = "serve"
	CmdVersion = "version"

	FlagDebug    = "debug"
	FlagEnvFile  = "env-file"
	FlagToday    = "today"
	FlagJSON     = "json"
	FlagInsights = "insights"
	FlagPort     = "port"
	FlagBirth    = "birth-date"

	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescEnvFile  = "Extra .env file to load before reading the environment"
	FlagDescToday    = "Reference date used as today (YYYY-MM-DD)"
	FlagDescJSON     = "Print the result as JSON"
	FlagDescInsights = "Also fetch the AI insights for the birth year"
	FlagDescPort     = "Port for the local HTTP API"
	FlagDescBirth    = "Birth date whose calendar is served on /calendar.ics (YYYY-MM-DD)"

	CmdShortRoot    = "Age calculator with AI birth-year insights"
	CmdLongRoot     = "Go AgeCalc computes your age in years, months and days, counts the days to your next birthday\nand asks a generative model for a fact about your birth year. Without a subcommand it opens the desktop app."
	CmdShortCalc    = "Compute the age for a birth date"
	CmdUseCalc      = "calc <birth-date>"
	CmdShortServe   = "Serve the age API and birthday calendar on localhost"
	CmdShortVersion = "Print version information"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 640
	MainWindowHeight    = 560
	SettingsWindowWidth = 600

	// Birth date entry
	DatePlaceholder = "YYYY-MM-DD"
	PlaceholderURL  = "https://dav.example.com/addressbooks/me/contacts/?export"
	DateEntryRunes  = "0123456789-/"

	// Preference Keys
	PrefLanguage   = "language"
	PrefProvider   = "insight_provider"
	PrefModel      = "insight_model"
	PrefBaseURL    = "insight_base_url"
	PrefServerPort = "server_port"
	PrefSourceMode = "source_mode"
	PrefLocalPath  = "local_path"
	PrefCardDAVURL = "carddav_url"
	PrefUsername   = "username"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "id"}

// -----------------------------------------------------------------------------
// UI Contacts Window Constants
// -----------------------------------------------------------------------------

const (
	ContactsWinWidth  = 640
	ContactsWinHeight = 420

	// Table Column IDs
	ColIDName   = 0
	ColIDDate   = 1
	ColIDAge    = 2
	ColIDZodiac = 3
	ColCount    = 4

	// Table Layout
	ColWidthName   = 220
	ColWidthDate   = 120
	ColWidthAge    = 120
	ColWidthZodiac = 120

	// Display Formats & Placeholders
	DateFormatDisplay = "2006-01-02"
	TablePlaceholder  = "Cell Content"
	AgeUnknown        = "-"
	AgeArrow          = "%d → %d"
	LogMsgOpenWin     = "Opening contacts window"
	LogMsgSorted      = "Contacts sorted"
	LogMsgPicked      = "Contact loaded into calculator"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle     = "win_title"
	TKeyWinSettings  = "win_settings_title"
	TKeyWinContacts  = "win_contacts_title"
	TKeyLblSubtitle  = "lbl_subtitle"
	TKeyLblBirthDate = "lbl_birth_date"
	TKeyHelpBirth    = "help_birth_date"
	TKeyBtnCalculate = "btn_calculate"
	TKeyBtnReset     = "btn_reset"
	TKeyBtnRetry     = "btn_retry"
	TKeyBtnExportICS = "btn_export_ics"
	TKeyBtnContacts  = "btn_contacts"
	TKeyBtnSettings  = "btn_settings"
	TKeyBtnSave      = "btn_save"
	TKeyBtnCancel    = "btn_cancel"
	TKeyBtnBrowse    = "btn_browse"
	TKeyBtnLoad      = "btn_load"

	// Result cards
	TKeyStatYears     = "stat_years"
	TKeyStatYearsSub  = "stat_years_sub"
	TKeyStatMonths    = "stat_months"
	TKeyStatMonthsSub = "stat_months_sub"
	TKeyStatDays      = "stat_days"
	TKeyStatDaysSub   = "stat_days_sub"
	TKeyStatTotal     = "stat_total_days"
	TKeyStatNext      = "stat_next_birthday"
	TKeyStatNextValue = "stat_next_birthday_value" // Requires Count
	TKeyStatNextToday = "stat_next_birthday_today"
	TKeyStatZodiac    = "stat_zodiac"

	// Insight card
	TKeyInsightTitle   = "insight_title"
	TKeyInsightLoading = "insight_loading"
	TKeyInsightError   = "insight_error"
	TKeyInsightNoKey   = "insight_no_key"
	TKeyInsightFact    = "insight_fact" // Requires Year
	TKeyInsightQuote   = "insight_quote"

	// Validation & dialogs
	TKeyErrInvalidDate = "err_invalid_date"
	TKeyErrExport      = "err_export"
	TKeyErrContacts    = "err_contacts"
	TKeyErrPartial     = "err_contacts_partial"
	TKeyErrPortReq     = "err_port_required"
	TKeyErrPortNum     = "err_port_number"
	TKeyErrPortRange   = "err_port_range"
	TKeyNotifExported  = "notif_exported"
	TKeyEvtSummaryAge  = "event_summary_age" // Requires Age

	// Settings
	TKeyLblGeneral  = "lbl_general"
	TKeyLblLanguage = "lbl_language"
	TKeyHelpLang    = "help_language"
	TKeyLblPort     = "lbl_server_port"
	TKeyHelpPort    = "help_port"
	TKeyLblInsight  = "lbl_insight"
	TKeyLblProvider = "lbl_provider"
	TKeyLblModel    = "lbl_model"
	TKeyHelpModel   = "help_model"
	TKeyLblBaseURL  = "lbl_base_url"
	TKeyLblAPIKey   = "lbl_api_key"
	TKeyHelpAPIKey  = "help_api_key"
	TKeyLblSource   = "lbl_source"
	TKeyModeCardDAV = "mode_carddav"
	TKeyModeLocal   = "mode_local"
	TKeyLblURL      = "lbl_url"
	TKeyHelpURL     = "help_carddav_url"
	TKeyLblUser     = "lbl_user"
	TKeyLblPass     = "lbl_pass"
	TKeyLblFooter   = "lbl_footer"

	// Column Headers & Formats
	TKeyColName    = "col_name"
	TKeyColDate    = "col_date"
	TKeyColAge     = "col_age"
	TKeyColZodiac  = "col_zodiac"
	TKeyFormatDate = "format_date_short"

	// TKeyZodiacPrefix is joined with the lower-case sign name, e.g. "zodiac_aries".
	TKeyZodiacPrefix = "zodiac_"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb          = "web"
	SourceModeLocal        = "local"
	DefaultPort            = "18080"
	DefaultLanguage        = "en"
	DefaultLeapYear        = 2000 // Leap year fallback for dates like --02-29
	DefaultReminderTrigger = "-P1D"
	CalendarYears          = 3
	UIDSalt                = "go-agecalc-v1-" // Salt for deterministic UID generation
	HoursPerDay            = 24
	SecondsPerDay          = HoursPerDay * 60 * 60
	MonthsPerYear          = 12
	DefaultInsightTimeout  = 30 * time.Second
)

// -----------------------------------------------------------------------------
// Insight Providers
// -----------------------------------------------------------------------------

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultProvider    = ProviderGemini
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"

	LangIndonesian = "id"
	LangEnglish    = "en"

	// JSON field names shared by the response schema and the parser.
	FieldHistoricalFact     = "historicalFact"
	FieldInspirationalQuote = "inspirationalQuote"

	MimeJSON = "application/json"
)

// SupportedProviders lists the insight backends selectable in settings.
var SupportedProviders = []string{ProviderGemini, ProviderOpenAI}

// -----------------------------------------------------------------------------
// Environment Variables
// -----------------------------------------------------------------------------

const (
	EnvGeminiKey      = "GEMINI_API_KEY"
	EnvLegacyKey      = "API_KEY"
	EnvOpenAIKey      = "OPENAI_API_KEY"
	EnvProvider       = "AGECALC_PROVIDER"
	EnvModel          = "AGECALC_MODEL"
	EnvBaseURL        = "AGECALC_BASE_URL"
	EnvLang           = "AGECALC_LANG"
	EnvPort           = "AGECALC_PORT"
	EnvInsightTimeout = "AGECALC_INSIGHT_TIMEOUT"
	DotEnvFile        = ".env"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go AgeCalc//Engine//EN"
	ICalCalName = "Birthday"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalAction  = "DISPLAY"
	ICalDomain  = "goagecalc"

	PropXWRCalName = "X-WR-CALNAME"

	ICSFileName = "birthday.ics"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

// DateLayouts are tried in order when reading a full birth date.
var DateLayouts = []string{
	time.DateOnly,
	"20060102",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
	"02-01-2006",
}

// DateLayoutsNoYear covers the vCard 4 "--MMDD" forms.
var DateLayoutsNoYear = []string{
	"--01-02",
	"--0102",
}

const (
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength = 16
	FormatUID     = "%s-%d@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtICS   = ".ics"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 60 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	RouteCalendar = "/calendar.ics"
	RouteAge      = "/api/age"
	RouteInsights = "/api/insights"

	QueryBirthDate = "birthDate"
	QueryYear      = "year"
	QueryAge       = "age"
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

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSONUTF8        = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	CacheControlNoStore = "no-store"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty    = "configuration error: local path is empty"
	ErrWebURLEmpty       = "configuration error: web URL is empty"
	ErrFetcherMissing    = "internal error: network fetcher is not initialized"
	ErrModeUnsupport     = "configuration error: unsupported source mode"
	ErrServerStartup     = "server startup failed"
	ErrServerShutdown    = "server shutdown failed"
	ErrPortRequired      = "server port is required"
	ErrPortNumber        = "server port must be a number"
	ErrPortRange         = "server port must be between 1 and 65535"
	ErrInvalidURL        = "invalid URL structure"
	ErrProtocol          = "unsupported protocol scheme (http/https only)"
	ErrBuildRequest      = "failed to build HTTP request"
	ErrNetwork           = "network request failed"
	ErrUnexpectedStatus  = "unexpected HTTP status"
	ErrVCardSource       = "failed to open vCard source"
	ErrVCardTruncated    = "address book read stopped at a malformed vCard"
	ErrICalEncode        = "failed to encode iCalendar data"
	ErrDateEmpty         = "birth date is empty"
	ErrDateParse         = "unable to parse date"
	ErrFutureBirth       = "birth date is in the future"
	ErrInvalidInput      = "invalid birth date"
	ErrNoResult          = "no age computed yet"
	ErrSessionClosed     = "session is closed"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrCreateDir         = "could not create app cache dir"
	ErrAppFailed         = "application failed unexpectedly"
	ErrWriteResp         = "failed to write response body"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrLocNotInit        = "localizer not initialized"
	ErrEnvFile           = "failed to load env file"
	ErrEnvParse          = "failed to parse environment"
	ErrInsightUnavail    = "insight unavailable"
	ErrMissingCredential = "API key is missing"
	ErrEmptyResponse     = "no data returned"
	ErrMalformedResponse = "malformed insight payload"
	ErrUnknownProvider   = "unknown insight provider"
	ErrClientInit        = "failed to initialise AI client"
	ErrQueryParam        = "invalid query parameter"
	ErrExportWrite       = "failed to write calendar file"
	ErrKeyringSave       = "failed to save secret to keyring"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar not ready, compute an age first."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge = "Birthday (%d)"
	FallbackName       = "Unknown"
	FallbackFact       = "Historical fact (%d)"
	FallbackQuote      = "Quote"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgEnvLoaded      = "Environment loaded"
	MsgEnvFileSkip    = "No .env file found"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgAPIRequest     = "API request served"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Secret retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedFuture  = "Skipping birth date in the future"
	MsgImportStarted  = "Contact import started"
	MsgImportDone     = "Contact import finished"
	MsgFetchStart     = "Fetching address book"
	MsgFetchStatus    = "Address book server returned an error status"
	MsgFetchOK        = "Address book downloaded"
	MsgAgeComputed    = "Age computed"
	MsgInvalidInput   = "Rejected birth date"
	MsgInsightStart   = "Fetching insights"
	MsgInsightOK      = "Insights received"
	MsgInsightFailed  = "Insight fetch failed"
	MsgInsightStale   = "Discarding insight from a reset session"
	MsgStateChange    = "Loading state changed"
	MsgSettingsSave   = "Saving preferences"
	MsgSettingsOpen   = "Opening settings window"
	MsgSettingsFocus  = "Settings window already open, requesting focus"
	MsgExported       = "Calendar exported"
	MsgInsightWarning = "Insights unavailable: %v\n"
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
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyProvider  = "provider"
	LogKeyModel     = "model"
	LogKeyYear      = "birth_year"
	LogKeyAge       = "age"
	LogKeyFrom      = "from"
	LogKeyTo        = "to"
	LogKeyEvent     = "event"
	LogKeyRoute     = "route"
	LogKeyMethod    = "method"
	LogKeyGen       = "generation"

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
	CompUISet    = "ui_settings"
	CompEngine   = "engine"
	CompContacts = "contacts"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompInsight  = "insight"
	CompSession  = "session"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompConfig   = "config"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3
)
