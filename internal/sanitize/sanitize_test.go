package sanitize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSentinels(t *testing.T) {
	sentinels := []any{nil, "", "null", "NULL", "NA"}
	for _, v := range sentinels {
		assert.Equal(t, 0, Value(v), "sentinel %#v should normalize to 0", v)
	}
}

func TestValuePassthrough(t *testing.T) {
	cases := []any{"12.34", "abc", 42.5, float64(0), true, "na", "Null"}
	for _, v := range cases {
		assert.Equal(t, v, Value(v), "non-sentinel %#v should pass through", v)
	}
}

func TestTimestampValid(t *testing.T) {
	got := Timestamp("2024-01-01 10:00:00.000000")
	require.IsType(t, time.Time{}, got)
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	assert.True(t, want.Equal(got.(time.Time)))
}

func TestTimestampFraction(t *testing.T) {
	got := Timestamp("2024-06-15 23:59:59.123456")
	require.IsType(t, time.Time{}, got)
	want := time.Date(2024, 6, 15, 23, 59, 59, 123456000, time.Local)
	assert.True(t, want.Equal(got.(time.Time)))
}

func TestTimestampShortFraction(t *testing.T) {
	cases := map[string]time.Time{
		"2024-01-01 10:00:00.5":     time.Date(2024, 1, 1, 10, 0, 0, 500000000, time.Local),
		"2024-01-01 10:00:00.123":   time.Date(2024, 1, 1, 10, 0, 0, 123000000, time.Local),
		"2024-01-01 10:00:00.04500": time.Date(2024, 1, 1, 10, 0, 0, 45000000, time.Local),
	}
	for in, want := range cases {
		got := Timestamp(in)
		require.IsType(t, time.Time{}, got, "input %q", in)
		assert.True(t, want.Equal(got.(time.Time)), "input %q", in)
	}
}

func TestTimestampInvalid(t *testing.T) {
	cases := []any{
		nil,
		"",
		"null",
		"NULL",
		"NA",
		"2024-01-01",
		"2024-01-01 10:00:00", // fraction required
		"2024-01-01 10:00:00.",
		"2024-01-01 10:00:00.1234567", // more digits than upstream emits
		"2024-01-01 10:00:00.12a",
		"01/01/2024 10:00:00.000000",
		"not a timestamp",
		42,
	}
	for _, v := range cases {
		assert.Nil(t, Timestamp(v), "input %#v should normalize to absent", v)
	}
}

func TestReading(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.Local)
	raw := map[string]any{
		"imei":     "123",
		"gpsiat":   "2024-01-01 10:00:00.000000",
		"bmsiat":   "NA",
		"latitude": "12.34",
		"voltage":  nil,
		"soc":      "NULL",
	}

	got := Reading(raw, now)

	assert.Equal(t, "123", got["imei"])
	assert.Equal(t, "12.34", got["latitude"])
	assert.Equal(t, 0, got["voltage"])
	assert.Equal(t, 0, got["soc"])
	assert.Nil(t, got["bmsiat"])
	assert.Equal(t, now, got["created_at"])

	require.IsType(t, time.Time{}, got["gpsiat"])
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	assert.True(t, want.Equal(got["gpsiat"].(time.Time)))
}

func TestReadingStampsTimestampsEvenWhenMissing(t *testing.T) {
	now := time.Now()
	got := Reading(map[string]any{"imei": "9"}, now)

	_, hasGPS := got["gpsiat"]
	_, hasBMS := got["bmsiat"]
	assert.True(t, hasGPS)
	assert.True(t, hasBMS)
	assert.Nil(t, got["gpsiat"])
	assert.Nil(t, got["bmsiat"])
	assert.Equal(t, now, got["created_at"])
}
