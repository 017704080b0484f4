// Package sanitize normalizes raw vendor records for storage. The upstream
// API marks missing data with a handful of sentinel forms; everything else
// passes through untouched, which mirrors the permissive upstream contract.
package sanitize

import (
	"strings"
	"time"

	"vizvolt/internal/models"
)

// timestampBase is the textual format of gpsiat and bmsiat up to the seconds.
// A fractional part of one to six digits must follow, as in the upstream
// payloads.
const timestampBase = "2006-01-02 15:04:05"

// Reading normalizes one raw device record. Sentinel values become 0 for
// every field except the two timestamps, which become absent (SQL NULL) when
// sentinel or unparsable. The ingestion time is stamped as created_at.
func Reading(raw map[string]any, now time.Time) models.DeviceReading {
	out := make(models.DeviceReading, len(raw)+1)
	for k, v := range raw {
		out[k] = Value(v)
	}

	out["gpsiat"] = Timestamp(raw["gpsiat"])
	out["bmsiat"] = Timestamp(raw["bmsiat"])
	out["created_at"] = now

	return out
}

// Value replaces sentinel values with the numeric default 0.
func Value(v any) any {
	if isSentinel(v) {
		return 0
	}
	return v
}

// Timestamp parses a textual timestamp in the process-local zone. Sentinel,
// non-string and malformed inputs all yield nil.
func Timestamp(v any) any {
	if isSentinel(v) {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return nil
	}
	frac := len(s) - dot - 1
	if frac < 1 || frac > 6 {
		return nil
	}
	t, err := time.ParseInLocation(timestampBase+"."+strings.Repeat("0", frac), s, time.Local)
	if err != nil {
		return nil
	}
	return t
}

func isSentinel(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	switch s {
	case "", "null", "NULL", "NA":
		return true
	}
	return false
}
