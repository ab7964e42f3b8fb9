package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGuildList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		wantErr  bool
	}{
		{
			name:     "two guilds",
			input:    "Alpha,Beta",
			expected: []string{"Alpha", "Beta"},
		},
		{
			name:     "whitespace trimmed",
			input:    "  Alpha , Beta ,  Gamma",
			expected: []string{"Alpha", "Beta", "Gamma"},
		},
		{
			name:     "empty entries dropped",
			input:    "Alpha,,Beta,",
			expected: []string{"Alpha", "Beta"},
		},
		{
			name:     "input order and case preserved",
			input:    "zulu,ALPHA,MidGuild",
			expected: []string{"zulu", "ALPHA", "MidGuild"},
		},
		{
			name:    "single guild rejected",
			input:   "Alpha",
			wantErr: true,
		},
		{
			name:    "only separators rejected",
			input:   " , , ",
			wantErr: true,
		},
		{
			name:    "empty input rejected",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guilds, err := ParseGuildList(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, guilds)
		})
	}
}

func TestParseStartTime(t *testing.T) {
	t.Run("unix timestamp", func(t *testing.T) {
		startTime, err := ParseStartTime("1700000000")
		require.NoError(t, err)
		assert.Equal(t, int64(1700000000), startTime)
	})

	t.Run("timestamp with surrounding whitespace", func(t *testing.T) {
		startTime, err := ParseStartTime("  1700000000 ")
		require.NoError(t, err)
		assert.Equal(t, int64(1700000000), startTime)
	})

	t.Run("date with time", func(t *testing.T) {
		startTime, err := ParseStartTime("2026-09-01 20:00")
		require.NoError(t, err)
		expected := time.Date(2026, 9, 1, 20, 0, 0, 0, time.Local).Unix()
		assert.Equal(t, expected, startTime)
	})

	t.Run("date only", func(t *testing.T) {
		startTime, err := ParseStartTime("2026-09-01")
		require.NoError(t, err)
		expected := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local).Unix()
		assert.Equal(t, expected, startTime)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseStartTime("next tuesday-ish")
		assert.Error(t, err)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, err := ParseStartTime("")
		assert.Error(t, err)
	})
}
