package logger

import (
	"fmt"

	"github.com/getsentry/sentry-go"
)

// sentryFrames is the frame a SentryLogger adds in front of its GatewayLogger.
const sentryFrames = 1

// sentryTags are LogContext.Data keys promoted to Sentry tags,
// so events can be searched by the resource and method dispatched.
var sentryTags = []string{"resource", "method"}

var sentryLevels = map[LogLevel]sentry.Level{
	LogLevelWarn:  sentry.LevelWarning,
	LogLevelError: sentry.LevelError,
	LogLevelFatal: sentry.LevelFatal,
}

// A SentryLogger writes logs through a SkipLogger
// and ships errors attached to warnings and above to Sentry.
type SentryLogger struct {
	l SkipLogger
}

// NewSentryLogger constructs a SentryLogger based off the provided GatewayLogger.
//
// If Sentry cannot be initialized, NewSentryLogger logs the issue and returns gl.
func NewSentryLogger(gl *GatewayLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  gl.env,
		IgnoreErrors: []string{"write: broken pipe"},
	})
	if err != nil {
		err = fmt.Errorf("unable to init Sentry: %s", err)
		gl.Error(err.Error(), nil)
		return gl
	}

	return &SentryLogger{l: gl.AddSkip(sentryFrames + gl.Skip())}
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message, on top of the SentryLogger's own.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (sl *SentryLogger) AddSkip(i int) SkipLogger {
	return &SentryLogger{l: sl.l.AddSkip(sentryFrames + i)}
}

func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }
func (sl *SentryLogger) Info(msg string, ctx *LogContext)  { sl.l.Info(msg, ctx) }

// Warn, Error and Fatal also report ctx.Error to Sentry.
func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	sl.l.Warn(msg, ctx)
	sl.send(LogLevelWarn, ctx)
}

func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	sl.l.Error(msg, ctx)
	sl.send(LogLevelError, ctx)
}

func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	sl.l.Fatal(msg, ctx)
	sl.send(LogLevelFatal, ctx)
}

// LogLevel returns the LogLevel set for the SentryLogger.
func (sl *SentryLogger) LogLevel() LogLevel { return sl.l.LogLevel() }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (sl *SentryLogger) Skip() int { return sl.l.Skip() - sentryFrames }

// send ships the LogContext.Error to Sentry,
// including any additional data from LogContext,
// when level is at or above the SentryLogger's.
func (sl *SentryLogger) send(level LogLevel, ctx *LogContext) {
	if level < sl.LogLevel() || ctx == nil || ctx.Error == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if ctx.Type != "" {
			scope.SetTag("type", ctx.Type)
		}

		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
		}

		for _, tag := range sentryTags {
			if v, ok := ctx.Data[tag].(string); ok && v != "" {
				scope.SetTag(tag, v)
			}
		}

		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		scope.SetLevel(sentryLevels[level])
		sentry.CaptureException(ctx.Error)
	})
}
