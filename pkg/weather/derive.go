package weather

import "math"

// SkyCondition is the coarse sky bucket used when estimating UV exposure
// without an API value.
type SkyCondition string

const (
	SkyClear   SkyCondition = "clear"
	SkyClouds  SkyCondition = "clouds"
	SkyRain    SkyCondition = "rain"
	SkyUnknown SkyCondition = "unknown"
)

// HeatIndex estimates the apparent temperature in °C. Below 26 °C or 40%
// humidity the air temperature is returned unchanged.
func HeatIndex(temperature, humidity float64) float64 {
	if temperature <= 26 || humidity <= 40 {
		return temperature
	}
	index := temperature + 0.5*(temperature-26)*(humidity/100)
	return math.Round(index*10) / 10
}

// EstimateUVIndex estimates the UV index from the sky condition and the local
// hour. Zero outside daylight hours.
func EstimateUVIndex(sky SkyCondition, hour int) float64 {
	if hour < 7 || hour > 19 {
		return 0
	}

	switch sky {
	case SkyRain, SkyClouds:
		return math.Min(4, math.Max(0, float64(hour-7)))
	case SkyClear:
		return math.Min(11, math.Max(0, float64(hour-6)*1.2))
	default:
		return 6
	}
}

// ComfortLevel grades outdoor activity conditions.
type ComfortLevel string

const (
	ComfortGood      ComfortLevel = "good"
	ComfortFair      ComfortLevel = "fair"
	ComfortPoor      ComfortLevel = "poor"
	ComfortDangerous ComfortLevel = "dangerous"
)

// Comfort grades conditions for outdoor activity from the heat index and
// humidity.
func Comfort(temperature, humidity float64) ComfortLevel {
	index := HeatIndex(temperature, humidity)

	switch {
	case index > 40 || temperature > 38:
		return ComfortDangerous
	case index > 32 || (temperature > 30 && humidity > 75):
		return ComfortPoor
	case index > 27:
		return ComfortFair
	default:
		return ComfortGood
	}
}

// Advice returns French guidance strings for a comfort level.
func Advice(level ComfortLevel) []string {
	switch level {
	case ComfortDangerous:
		return []string{
			"Conditions dangereuses : reportez toute activité extérieure",
			"Restez au frais et hydratez-vous régulièrement",
		}
	case ComfortPoor:
		return []string{
			"Conditions difficiles : réduisez l'intensité et la durée",
			"Privilégiez les heures fraîches (avant 10h, après 19h)",
		}
	case ComfortFair:
		return []string{
			"Conditions correctes : hydratez-vous davantage que d'habitude",
		}
	default:
		return []string{
			"Conditions favorables à l'activité extérieure",
		}
	}
}
