package tank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/common"
)

// DecodeSnapshot parses a JSON marker record. A literal null (or an empty
// payload) yields a nil snapshot and no error: the marker has no data yet.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var s *Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return s, nil
}

// Normalize applies the default-coercion rules once, at the edge:
// missing or non-numeric flow and level become 0, temperature becomes 20.
// Negative flow and level are raised to 0.
func Normalize(s Snapshot, receivedAt time.Time) (SensorReading, MarkerInfo) {
	reading := SensorReading{
		FlowRate:    math.Max(common.NumberOr(s.WaterFlow, DefaultFlowRate), 0),
		Level:       math.Max(common.NumberOr(s.WaterLevel, DefaultLevel), 0),
		Temperature: common.NumberOr(s.Temperature, DefaultTemperature),
		ReceivedAt:  receivedAt,
	}

	var info MarkerInfo
	if v, ok := common.Number(s.Humidity); ok {
		info.Humidity = &v
	}
	if v, ok := common.Bool(s.IsGateOpen); ok {
		info.GateOpen = &v
	}
	if v, ok := common.Number(s.Latitude); ok {
		info.Latitude = &v
	}
	if v, ok := common.Number(s.Longitude); ok {
		info.Longitude = &v
	}
	return reading, info
}
