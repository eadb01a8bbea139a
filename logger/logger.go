package logger

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// knownFrames is how deep runtime.Caller sits below a level method's caller.
const knownFrames = 2

const (
	defaultEnv = "DEVELOPMENT"
	modulePath = "gw"
)

//go:generate mockgen -destination=loggertest/mock_logger.go -package=loggertest github.com/cloud-cli/gw/logger Logger

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// NewLogLevel parses a level name, e.g., "warn" or "WARN".
// Names it does not know parse to LogLevelUnk.
func NewLogLevel(val string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(val)) {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelDebug:
		return "[DEBUG]"
	case LogLevelInfo:
		return "[INFO]"
	case LogLevelWarn:
		return "[WARN]"
	case LogLevelError:
		return "[ERROR]"
	case LogLevelFatal:
		return "[FATAL]"
	default:
		return "[UNK]"
	}
}

func (ll LogLevel) colorize(format string, a ...any) string {
	switch ll {
	case LogLevelDebug:
		return color.WhiteString(format, a...)
	case LogLevelInfo:
		return color.BlueString(format, a...)
	case LogLevelWarn:
		return color.YellowString(format, a...)
	case LogLevelError:
		return color.RedString(format, a...)
	case LogLevelFatal:
		return color.MagentaString(format, a...)
	default:
		return color.CyanString(format, a...)
	}
}

// GatewayLogger implements Logger using log.
type GatewayLogger struct {
	skip int
	env  string
	l    *log.Logger
	ll   LogLevel
}

// New constructs a GatewayLogger.
//
// Logs are printed to os.Stderr by default, using the std lib log pkg.
// The default environment is ENVIRONMENT, or DEVELOPMENT when unset.
// The default log level is INFO.
//
// If the SENTRY_DSN environment variable is set,
// New wraps the GatewayLogger in a SentryLogger.
func New(opts ...LoggerOptFn) Logger {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = defaultEnv
	}

	l := &GatewayLogger{
		env: env,
		l:   log.New(os.Stderr, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		l.Info("SENTRY_DSN set, configuring SentryLogger", nil)
		return NewSentryLogger(l, dsn)
	}

	return l
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *GatewayLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

func (l *GatewayLogger) Debug(msg string, ctx *LogContext) { l.log(LogLevelDebug, msg, ctx) }
func (l *GatewayLogger) Error(msg string, ctx *LogContext) { l.log(LogLevelError, msg, ctx) }
func (l *GatewayLogger) Fatal(msg string, ctx *LogContext) { l.log(LogLevelFatal, msg, ctx) }
func (l *GatewayLogger) Info(msg string, ctx *LogContext)  { l.log(LogLevelInfo, msg, ctx) }
func (l *GatewayLogger) Warn(msg string, ctx *LogContext)  { l.log(LogLevelWarn, msg, ctx) }

// LogLevel returns the LogLevel set for the GatewayLogger.
func (l *GatewayLogger) LogLevel() LogLevel { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *GatewayLogger) Skip() int { return l.skip }

// log prints msg at level, along with the call site and any LogContext,
// when level is at or above the GatewayLogger's.
func (l *GatewayLogger) log(level LogLevel, msg string, ctx *LogContext) {
	if level < l.ll {
		return
	}

	_, file, line, _ := runtime.Caller(knownFrames + l.skip)

	msg = level.colorize("%s %s:%d '%s'", level, callSite(file), line, msg)
	if ctx == nil {
		l.l.Println(msg)
		return
	}

	l.l.Println(msg, "log_context:", ctx)
}

// callSite shortens file to start at this module's directory,
// or else to its parent directory and name, e.g.,
// /home/dev/gw/gateway/gateway.go => gw/gateway/gateway.go
// /home/dev/my-project/main.go => my-project/main.go
func callSite(file string) string {
	file = filepath.ToSlash(file)
	if i := strings.LastIndex(file, "/"+modulePath+"/"); i >= 0 {
		return file[i+1:]
	}

	dir, name := filepath.Split(file)
	return filepath.Join(filepath.Base(dir), name)
}
