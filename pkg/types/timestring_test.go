package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 15, 14, 30, 45, 0, time.UTC)
	assert.Equal(t, TimeString("14:30"), NewTimeString(moment))
}

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid", input: "09:15", want: TimeString("09:15")},
		{name: "midnight", input: "00:00", want: TimeString("00:00")},
		{name: "last minute", input: "23:59", want: TimeString("23:59")},
		{name: "no leading zero", input: "9:15", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeStringMinutes(t *testing.T) {
	minutes, err := TimeString("14:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 14*60+30, minutes)

	_, err = TimeString("bad").Minutes()
	require.Error(t, err)
}

func TestTimeStringOrdering(t *testing.T) {
	assert.True(t, TimeString("12:00").IsBefore("12:30"))
	assert.False(t, TimeString("12:30").IsBefore("12:00"))
	assert.False(t, TimeString("12:00").IsBefore("12:00"))

	assert.True(t, TimeString("22:30").IsAfter("22:00"))
	assert.False(t, TimeString("22:00").IsAfter("22:00"))
}

// Лексикографический порядок строк "HH:MM" совпадает со временем —
// на этом держится сортировка и сравнение в SQL
func TestTimeStringLexicographicOrderMatchesTime(t *testing.T) {
	times := []TimeString{"00:00", "09:05", "10:00", "12:30", "22:00", "23:59"}

	for i := 0; i < len(times)-1; i++ {
		assert.True(t, string(times[i]) < string(times[i+1]),
			"%s must sort before %s as a string", times[i], times[i+1])
		assert.True(t, times[i].IsBefore(times[i+1]),
			"%s must be before %s as time", times[i], times[i+1])
	}
}

func TestTimeStringAddMinutes(t *testing.T) {
	got, err := TimeString("12:00").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:30"), got)

	got, err = TimeString("22:45").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:45"), got)

	// Переход через полночь не поддерживается
	_, err = TimeString("23:45").AddMinutes(30)
	require.Error(t, err)

	_, err = TimeString("00:10").AddMinutes(-30)
	require.Error(t, err)
}

func TestTimeStringIsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("12:00").IsZero())
}
