package timeutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/scheduler/internal/timeutil"
)

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "midnight", in: "00:00", want: 0},
		{name: "midday", in: "12:30", want: 750},
		{name: "end of day", in: "24:00", want: 1440},
		{name: "end of day with seconds", in: "24:00:00", want: 1440},
		{name: "with seconds", in: "08:15:00", want: 495},
		{name: "malformed", in: "8h15", wantErr: true},
		{name: "bad minute", in: "08:75", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := timeutil.ParseHHMM(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeBounds(t *testing.T) {
	_, err := timeutil.Normalize(-1)
	require.Error(t, err)

	_, err = timeutil.Normalize(1441)
	require.Error(t, err)

	got, err := timeutil.Normalize(1440)
	require.NoError(t, err)
	assert.Equal(t, 1440, got)
}

func TestIsNightHour(t *testing.T) {
	assert.True(t, timeutil.IsNightHour(22*60))
	assert.True(t, timeutil.IsNightHour(5*60+59))
	assert.False(t, timeutil.IsNightHour(6*60))
	assert.False(t, timeutil.IsNightHour(21*60+59))
}

func TestFormatHHMM(t *testing.T) {
	assert.Equal(t, "24:00", timeutil.FormatHHMM(1440))
	assert.Equal(t, "08:05", timeutil.FormatHHMM(485))
}
