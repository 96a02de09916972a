package tank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshot(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(`{"waterFlow": 12.5, "waterLevel": "0.8", "temperature": 22, "isGateOpen": true}`))
	require.NoError(t, err)
	require.NotNil(t, snap)

	r, info := Normalize(*snap, time.Unix(0, 0))
	assert.Equal(t, 12.5, r.FlowRate)
	assert.Equal(t, 0.8, r.Level)
	assert.Equal(t, 22.0, r.Temperature)
	require.NotNil(t, info.GateOpen)
	assert.True(t, *info.GateOpen)
	assert.Nil(t, info.Latitude)
}

func TestDecodeSnapshot_NullMeansNoData(t *testing.T) {
	for _, payload := range []string{"null", "  null\n", ""} {
		snap, err := DecodeSnapshot([]byte(payload))
		require.NoError(t, err, "payload %q", payload)
		assert.Nil(t, snap, "payload %q", payload)
	}
}

func TestDecodeSnapshot_Malformed(t *testing.T) {
	for _, payload := range []string{"{", "[1,2]", `"text"`} {
		_, err := DecodeSnapshot([]byte(payload))
		assert.ErrorIs(t, err, ErrMalformedSnapshot, "payload %q", payload)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want SensorReading
	}{
		{
			name: "empty record",
			snap: Snapshot{},
			want: SensorReading{FlowRate: 0, Level: 0, Temperature: 20},
		},
		{
			name: "non-numeric strings",
			snap: Snapshot{WaterFlow: "fast", WaterLevel: "", Temperature: "warm"},
			want: SensorReading{FlowRate: 0, Level: 0, Temperature: 20},
		},
		{
			name: "zero temperature is kept",
			snap: Snapshot{WaterFlow: 3.0, WaterLevel: 1.0, Temperature: 0.0},
			want: SensorReading{FlowRate: 3, Level: 1, Temperature: 0},
		},
		{
			name: "negative flow and level are raised to zero",
			snap: Snapshot{WaterFlow: -4.0, WaterLevel: -0.5, Temperature: -5.0},
			want: SensorReading{FlowRate: 0, Level: 0, Temperature: -5},
		},
		{
			name: "booleans are not numbers",
			snap: Snapshot{WaterFlow: true, Temperature: false},
			want: SensorReading{FlowRate: 0, Level: 0, Temperature: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Normalize(tt.snap, time.Time{})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_DisplayFields(t *testing.T) {
	_, info := Normalize(Snapshot{
		Humidity:   "55",
		IsGateOpen: "false",
		Latitude:   -23.55,
		Longitude:  -46.63,
	}, time.Time{})

	require.NotNil(t, info.Humidity)
	assert.Equal(t, 55.0, *info.Humidity)
	require.NotNil(t, info.GateOpen)
	assert.False(t, *info.GateOpen)
	require.NotNil(t, info.Latitude)
	require.NotNil(t, info.Longitude)
	assert.Equal(t, -23.55, *info.Latitude)
	assert.Equal(t, -46.63, *info.Longitude)
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, "#3b82f6", BandFor(0).Color)
	assert.Equal(t, "#3b82f6", BandFor(29.9).Color)
	assert.Equal(t, "#22c55e", BandFor(30).Color)
	assert.Equal(t, "#f59e0b", BandFor(70).Color)
	assert.Equal(t, "#ef4444", BandFor(90).Color)
	assert.Equal(t, "#ef4444", BandFor(100).Color)
}
