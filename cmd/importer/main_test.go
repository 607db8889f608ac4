package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	t.Run("full and partial rows", func(t *testing.T) {
		input := "timestamp,latitude,longitude,accuracy,altitude,speed\n" +
			"2025-05-01T09:00:00Z,35.68,139.76,5,40.5,1.2\n" +
			"2025-05-01T18:00:00+09:00,35.69,139.77,3,,\n" +
			"2025-05-01T09:02:00Z,35.70,139.78,4\n"

		records, err := parseCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, 35.68, records[0].Latitude)
		assert.Equal(t, 139.76, records[0].Longitude)
		require.NotNil(t, records[0].Altitude)
		assert.Equal(t, 40.5, *records[0].Altitude)
		require.NotNil(t, records[0].Speed)
		assert.Equal(t, 1.2, *records[0].Speed)

		assert.Nil(t, records[1].Altitude)
		assert.Nil(t, records[1].Speed)
		assert.True(t, records[1].Timestamp.Equal(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)))
		assert.Equal(t, time.UTC, records[1].Timestamp.Location())

		assert.Nil(t, records[2].Altitude)
	})

	t.Run("columns in any order", func(t *testing.T) {
		input := "Accuracy,Longitude,Latitude,Timestamp\n5,139.76,35.68,2025-05-01T09:00:00Z\n"

		records, err := parseCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 35.68, records[0].Latitude)
		assert.Equal(t, 5.0, records[0].Accuracy)
	})

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "empty file",
			input:   "",
			wantErr: "failed to read header",
		},
		{
			name:    "missing accuracy column",
			input:   "timestamp,latitude,longitude\n",
			wantErr: `missing column "accuracy"`,
		},
		{
			name:    "bad latitude",
			input:   "timestamp,latitude,longitude,accuracy\n2025-05-01T09:00:00Z,north,139.76,5\n",
			wantErr: `line 2: invalid latitude: "north"`,
		},
		{
			name:    "bad timestamp",
			input:   "timestamp,latitude,longitude,accuracy\n2025-05-01T09:00:00Z,1,2,3\nyesterday,1,2,3\n",
			wantErr: `line 3: invalid timestamp: "yesterday"`,
		},
		{
			name:    "bad optional speed",
			input:   "timestamp,latitude,longitude,accuracy,speed\n2025-05-01T09:00:00Z,1,2,3,fast\n",
			wantErr: `line 2: invalid speed: "fast"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
