// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured at creation time with functional options and are
// immutable afterward; [Logger.Wrap] and [Logger.With] derive new loggers.
// The zero [Logger] discards everything, so components can hold one without
// checking whether logging was configured.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("script loaded", slog.String("path", path))
//	logger.ErrorContext(ctx, "evaluation failed", slog.Any("error", err))
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. The interpreter reports tokenizer, parser,
// and import activity at trace level.
//
// # Output
//
// [FormatText] (default) and [FormatJSON] are supported. With [WithPretty]
// enabled, both are colorized when the output is a terminal.
// [WithTimeLayout] accepts the names of the [time] package layouts or a
// custom layout; "none" omits timestamps.
//
// # Package-Level Logger
//
// Functions such as [Info] and [WarnContext] write to a package-level
// logger that writes to [os.Stderr] and is reconfigured with [Config].
// Context-unaware functions use [DefaultContextProvider].
package log
