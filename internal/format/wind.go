package format

import "math"

// WindBand is one of four descriptive wind-speed categories.
type WindBand int

const (
	Calm WindBand = iota
	LightBreeze
	ModerateWind
	StrongWind
)

// Lower bounds in m/s, inclusive.
const (
	lightBreezeFrom  = 1.0
	moderateWindFrom = 5.0
	strongWindFrom   = 10.0
)

var windBandNames = [...]string{
	Calm:         "Calm",
	LightBreeze:  "Light Breeze",
	ModerateWind: "Moderate Wind",
	StrongWind:   "Strong Wind",
}

func (b WindBand) String() string {
	if b < Calm || b > StrongWind {
		return windBandNames[Calm]
	}
	return windBandNames[b]
}

// ClassifyWind maps a speed in m/s to its band. Negative and NaN speeds are
// out of domain and clamp to Calm.
func ClassifyWind(speed float64) WindBand {
	switch {
	case math.IsNaN(speed) || speed < lightBreezeFrom:
		return Calm
	case speed < moderateWindFrom:
		return LightBreeze
	case speed < strongWindFrom:
		return ModerateWind
	default:
		return StrongWind
	}
}

// DescribeWind returns the band label for speed.
func DescribeWind(speed float64) string {
	return ClassifyWind(speed).String()
}
