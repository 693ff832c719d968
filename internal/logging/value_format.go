package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const consoleTimeLayout = "2006-01-02 15:04:05"

// plainValue renders v without quoting, for header fields.
func plainValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindTime:
		return consoleTime(v.Time())
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

// fieldValue renders v for the indented field list, quoting strings that are
// empty or contain control characters or quotes.
func fieldValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindString, slog.KindAny:
		s := plainValue(v)
		if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < ' ' || r == '"' }) >= 0 {
			return strconv.Quote(s)
		}
		return s
	default:
		return plainValue(v)
	}
}

func consoleTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format(consoleTimeLayout)
}
