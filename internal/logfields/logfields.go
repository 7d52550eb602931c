package logfields

import "log/slog"

// Canonical log field names shared by the converters and the CLI.
const (
	KeyDirection  = "direction"
	KeyBlockType  = "block_type"
	KeyBlockIndex = "block_index"
	KeyLine       = "line"
	KeyFile       = "file"
	KeyFormat     = "format"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Direction(d string) slog.Attr    { return slog.String(KeyDirection, d) }
func BlockType(t string) slog.Attr    { return slog.String(KeyBlockType, t) }
func BlockIndex(i int) slog.Attr      { return slog.Int(KeyBlockIndex, i) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
