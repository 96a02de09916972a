package tank

import (
	"math"
	"time"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/physics"
	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/store"
)

// TickPeriod is the cadence of the volume accumulation clock.
const TickPeriod = time.Second

// Defaults applied when a snapshot field is missing or not a number.
const (
	DefaultFlowRate    = 0.0
	DefaultLevel       = 0.0
	DefaultTemperature = 20.0
)

// Rig holds the fixed geometry of the monitored installation.
type Rig struct {
	TankCapacityL   float64 `json:"tankCapacityL"`
	PipeDiameterM   float64 `json:"pipeDiameterM"`
	PipeLengthM     float64 `json:"pipeLengthM"`
	FrictionFactor  float64 `json:"frictionFactor"`
	BuoyancyRadiusM float64 `json:"buoyancyRadiusM"` // cross-section radius assumed for buoyancy
}

// DefaultRig returns the 100 L tank fed through a 10 m, 25 mm pipe.
func DefaultRig() Rig {
	return Rig{
		TankCapacityL:   100,
		PipeDiameterM:   0.025,
		PipeLengthM:     10,
		FrictionFactor:  physics.DefaultFrictionFactor,
		BuoyancyRadiusM: 0.25,
	}
}

// SubmergedVolume returns the volume in m³ of a water column of height
// level over the assumed buoyancy cross-section.
func (r Rig) SubmergedVolume(level float64) float64 {
	return level * math.Pi * r.BuoyancyRadiusM * r.BuoyancyRadiusM
}

// Snapshot is the raw marker record as published by the feed. Fields are
// number-like and may be missing or malformed; Normalize turns a Snapshot
// into a SensorReading.
type Snapshot struct {
	WaterFlow   any `json:"waterFlow"`
	WaterLevel  any `json:"waterLevel"`
	Temperature any `json:"temperature"`

	// display-only
	Humidity   any `json:"humidity,omitempty"`
	IsGateOpen any `json:"isGateOpen,omitempty"`
	Latitude   any `json:"latitude,omitempty"`
	Longitude  any `json:"longitude,omitempty"`
}

// SensorReading is a normalized snapshot.
type SensorReading struct {
	FlowRate    float64   `json:"flowRate"`    // L/min
	Level       float64   `json:"level"`       // m
	Temperature float64   `json:"temperature"` // °C
	ReceivedAt  time.Time `json:"receivedAt"`
}

// MarkerInfo carries the display-only fields of the last snapshot.
type MarkerInfo struct {
	Humidity  *float64 `json:"humidity,omitempty"`
	GateOpen  *bool    `json:"isGateOpen,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// FeedState is the connection state of the sensor feed.
type FeedState string

const (
	FeedConnecting FeedState = "connecting"
	FeedConnected  FeedState = "connected"
	FeedNoData     FeedState = "no_data"
	FeedError      FeedState = "error"
)

// FeedStatus is what the presentation layer shows about the feed.
type FeedStatus struct {
	Marker     string     `json:"marker"`
	State      FeedState  `json:"state"`
	Error      string     `json:"error,omitempty"`
	LastUpdate *time.Time `json:"lastUpdate,omitempty"`
	Info       MarkerInfo `json:"info"`
}

// Gauge is the tank-fill visualization state.
type Gauge struct {
	Percentage float64 `json:"percentage"`
	VolumeL    float64 `json:"volumeL"`
	CapacityL  float64 `json:"capacityL"`
	LevelM     float64 `json:"levelM"`
	Band       Band    `json:"band"`
}

// Band is a colour bucket of the fill percentage.
type Band struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// BandFor picks the colour band of a fill percentage.
func BandFor(pct float64) Band {
	switch {
	case pct < 30:
		return Band{Name: "low", Color: "#3b82f6"}
	case pct < 70:
		return Band{Name: "medium", Color: "#22c55e"}
	case pct < 90:
		return Band{Name: "high", Color: "#f59e0b"}
	default:
		return Band{Name: "full", Color: "#ef4444"}
	}
}

// Names of the derived quantities in Dashboard.Physics.
const (
	QuantityHydrostaticPressure = "hydrostaticPressure"
	QuantityBuoyancy            = "buoyancy"
	QuantityReynolds            = "reynolds"
	QuantityHeadLoss            = "headLoss"
	QuantityFillTime            = "fillTime"
)

// Dashboard is everything a render pass needs, computed from one
// consistent view of the state.
type Dashboard struct {
	Reading SensorReading                   `json:"reading"`
	HasData bool                            `json:"hasData"`
	VolumeL float64                         `json:"volumeL"`
	Tank    Gauge                           `json:"tank"`
	Fluid   physics.FluidState              `json:"fluid"`
	Sensors map[store.Metric]physics.Result `json:"sensors"`
	Physics map[string]physics.Result       `json:"physics"`
	History map[store.Metric][]store.Point  `json:"history"`
	Status  FeedStatus                      `json:"status"`
	Rig     Rig                             `json:"rig"`
}
