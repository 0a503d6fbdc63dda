package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
[database]
host = "localhost"
port = 5432
user = "app"
password = "secret"
dbname = "reservations"

[logs]
file = "logs/app.log"

[venue]
open_time = "12:00"
close_time = "23:00"
last_booking_time = "22:00"

[[venue.zones]]
id = "main_hall"
name = "Основной зал"
tables = [1, 2, 3]
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "reservations.status", cfg.NATS.Subject)
	assert.Equal(t, 30, cfg.Venue.SlotIntervalMinutes)
	assert.Equal(t, 10, cfg.Venue.LookAheadDays)
	assert.Equal(t, 20, cfg.Venue.MaxPartySize)
	assert.Equal(t, 60, cfg.Cleanup.IntervalSeconds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "bad open time",
			content: `
[venue]
open_time = "noon"
close_time = "23:00"
last_booking_time = "22:00"
[[venue.zones]]
id = "z"
name = "Z"
tables = [1]
`,
		},
		{
			name: "open after close",
			content: `
[venue]
open_time = "23:00"
close_time = "12:00"
last_booking_time = "11:00"
[[venue.zones]]
id = "z"
name = "Z"
tables = [1]
`,
		},
		{
			name: "last booking after close",
			content: `
[venue]
open_time = "12:00"
close_time = "23:00"
last_booking_time = "23:30"
[[venue.zones]]
id = "z"
name = "Z"
tables = [1]
`,
		},
		{
			name: "no zones",
			content: `
[venue]
open_time = "12:00"
close_time = "23:00"
last_booking_time = "22:00"
`,
		},
		{
			name: "duplicate zone ids",
			content: `
[venue]
open_time = "12:00"
close_time = "23:00"
last_booking_time = "22:00"
[[venue.zones]]
id = "z"
name = "Z"
tables = [1]
[[venue.zones]]
id = "z"
name = "Z2"
tables = [2]
`,
		},
		{
			name: "zone without tables",
			content: `
[venue]
open_time = "12:00"
close_time = "23:00"
last_booking_time = "22:00"
[[venue.zones]]
id = "z"
name = "Z"
tables = []
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestVenueConfigConversion(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	venue := cfg.VenueConfig()
	assert.Equal(t, "12:00", venue.OpenTime.String())
	assert.Equal(t, "22:00", venue.LastBookingTime.String())
	require.Len(t, venue.Zones, 1)
	assert.Equal(t, []int{1, 2, 3}, venue.Zones[0].Tables)
}

func TestIsOperator(t *testing.T) {
	cfg := &Config{Operators: Operators{IDs: []int64{100001, 100002}}}

	assert.True(t, cfg.IsOperator(100001))
	assert.False(t, cfg.IsOperator(42))
}
