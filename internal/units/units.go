// Package units provides shared constants and conversion for speed units.
package units

import "fmt"

// Unit constants. Filter state is always kept in m/s; conversion happens
// only at the presentation edge.
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ConvertSpeed converts a speed from meters per second to the target
// units. Unknown units are an error rather than a silent pass-through so
// callers cannot misreport a speed.
func ConvertSpeed(speedMPS float64, targetUnits string) (float64, error) {
	switch targetUnits {
	case MPS:
		return speedMPS, nil
	case MPH:
		return speedMPS * 2.2369362920544, nil
	case KMPH, KPH:
		return speedMPS * 3.6, nil
	default:
		return 0, fmt.Errorf("unknown speed unit %q (valid: mps, mph, kmph, kph)", targetUnits)
	}
}
