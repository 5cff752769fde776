package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"3s"`), &d))
	assert.Equal(t, 3*time.Second, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`1500000000`), &d))
	assert.Equal(t, 1500*time.Millisecond, d.Duration)

	require.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	require.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 2 * time.Minute})
	require.NoError(t, err)
	assert.Equal(t, `"2m0s"`, string(b))
}

func TestParseLocal_Layouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2030-01-02T12:00:00", time.Date(2030, 1, 2, 12, 0, 0, 0, time.UTC)},
		{"2030-01-02T12:00:00.250", time.Date(2030, 1, 2, 12, 0, 0, 250_000_000, time.UTC)},
		{"2030-01-02T12:00:00+02:00", time.Date(2030, 1, 2, 12, 0, 0, 0, time.UTC)},
		{"2030-01-02", time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocal(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got)
		})
	}

	_, err := ParseLocal("02/01/2030")
	require.Error(t, err)
}

func TestLocalTime_JSONRoundTripKeepsLayout(t *testing.T) {
	var v struct {
		At  LocalTime  `json:"at"`
		Opt *LocalTime `json:"opt"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"2030-01-02T12:00:00","opt":null}`), &v))
	assert.Nil(t, v.Opt)

	b, err := json.Marshal(v.At)
	require.NoError(t, err)
	assert.Equal(t, `"2030-01-02T12:00:00"`, string(b))
}

func TestLocalTime_DayAndNoon(t *testing.T) {
	lt := MustLocal("2030-01-02T17:45:10")
	assert.Equal(t, "2030-01-02T00:00:00", lt.Day().String())
	assert.Equal(t, "2030-01-02T12:00:00", lt.Noon().String())

	assert.Equal(t, MustLocal("2030-01-02"), MustLocal("2030-01-02T17:30:00").Day())
	assert.Equal(t, MustLocal("2030-01-02T12:00:00"), MustLocal("2030-01-02T00:00:01").Noon())
	assert.Equal(t, 2, lt.Time.Day())

	end := MustLocal("2030-12-31T23:59:59")
	assert.Equal(t, "2030-12-31T00:00:00", end.Day().String())
	assert.Equal(t, "2030-12-31T12:00:00", end.Noon().String())
}
