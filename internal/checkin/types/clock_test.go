package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want types.TimeOfDay
	}{
		{"07:30", 7*3600 + 30*60},
		{"18:20:00", 18*3600 + 20*60},
		{"00:00", 0},
		{"23:59:59", 86399},
	}
	for _, tc := range cases {
		got, err := types.ParseTimeOfDay(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseTimeOfDay_Rejects(t *testing.T) {
	for _, in := range []string{"", "7:30", "24:00", "07:60", "07:30:60", "ab:cd", "07:30:00:00"} {
		_, err := types.ParseTimeOfDay(in)
		assert.Error(t, err, in)
	}
}

func TestTimeOfDay_String(t *testing.T) {
	assert.Equal(t, "07:45:09", types.TimeOfDay(7*3600+45*60+9).String())
}

func TestWindow_ContainsIsInclusive(t *testing.T) {
	w := types.Window{Start: types.MustTimeOfDay("07:30"), End: types.MustTimeOfDay("18:20")}

	assert.True(t, w.Contains(types.MustTimeOfDay("07:30:00")))
	assert.True(t, w.Contains(types.MustTimeOfDay("18:20:00")))
	assert.True(t, w.Contains(types.MustTimeOfDay("12:00")))
	assert.False(t, w.Contains(types.MustTimeOfDay("07:29:59")))
	assert.False(t, w.Contains(types.MustTimeOfDay("18:20:01")))
}

func TestWindow_Validate(t *testing.T) {
	ok := types.Window{Start: types.MustTimeOfDay("07:30"), End: types.MustTimeOfDay("18:20")}
	require.NoError(t, ok.Validate())

	inverted := types.Window{Start: ok.End, End: ok.Start}
	require.Error(t, inverted.Validate())
}

func TestDayOf_UsesTimeLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	// 01:00 UTC on the 16th is still the 15th in BRT.
	ts := time.Date(2026, 2, 16, 1, 0, 0, 0, time.UTC).In(loc)

	assert.Equal(t, "2026-02-15", types.DayOf(ts))
	assert.Equal(t, types.MustTimeOfDay("22:00"), types.TimeOfDayOf(ts))
}
