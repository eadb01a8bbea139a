/*
Package logger provides logging functionality to a gateway by defining the required behavior in [Logger]
and providing an implementation of it with [GatewayLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [GatewayLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*GatewayLogger.Warn], [*GatewayLogger.Error], and [*GatewayLogger.Fatal] produce messages.

# GatewayLogger

The [GatewayLogger] is the implementation of [Logger] returned by the [New] function.
It writes to the process's standard error by default.

Log messages emitted by [GatewayLogger] are composed of a few parts:
	- timestamp
	- log level
	- call site
	- message
	- log context

Here's an example:
	2022/04/28 15:55:21 [INFO] gw/gateway/gateway.go:143 'request' log_context: {"data":{"method":"get","resource":"users"},"time":"2022-04-28T15:55:21Z","type":"request"}

The log context is a JSON-encoded [*LogContext].
Records emitted by the gateway always set its Type and Time.

# SentryLogger

When the SENTRY_DSN environment variable is set, [New] returns a [SentryLogger],
which additionally reports errors attached to warnings, errors and fatals to Sentry.
*/
package logger
