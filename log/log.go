package log

import (
	"log/slog"
	"strings"
)

// SlogLevelInfoFromString maps a configuration string onto a slog level.
// Unknown or empty values fall back to info.
func SlogLevelInfoFromString(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
