package logger

import "log"

// A LoggerOptFn configures a GatewayLogger as New constructs it.
type LoggerOptFn func(*GatewayLogger)

// WithEnv tags records with the environment the gateway serves,
// e.g., "PRODUCTION", in place of the ENVIRONMENT variable.
func WithEnv(env string) LoggerOptFn {
	return func(l *GatewayLogger) {
		l.env = env
	}
}

// WithLevel drops records below level.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *GatewayLogger) {
		l.ll = level
	}
}

// WithLogger prints records through log instead of a log.Logger writing to os.Stderr.
// Tests pass one writing to io.Discard or a buffer.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *GatewayLogger) {
		l.l = log
	}
}

// WithSkip sets how many extra frames lie between a level method
// and the call site a record names, for code logging through helpers of its own.
func WithSkip(skip int) LoggerOptFn {
	return func(l *GatewayLogger) {
		l.skip = skip
	}
}
