// Package logging builds the slog loggers used across shuku.
//
// The console handler prints compact, optionally colorized lines meant for
// interactive use; the JSON handler serves log files. Both honour a shared
// slog.LevelVar so verbosity can change after construction.
package logging
