package vitals

import (
	"math"

	"vitalwatch/internal/models"
)

// Range is an inclusive normal range for one vital kind. A reading is
// abnormal only strictly outside the range; boundary values are normal.
type Range struct {
	Min float64
	Max float64
}

// Reported returns the range as written into alert entries. Oxygen level is
// the only open-ended vital and it is a percentage, so an infinite upper
// bound reports as 100.
func (r Range) Reported() Range {
	if math.IsInf(r.Max, 1) {
		r.Max = 100
	}
	return r
}

// Table maps a vital kind to its normal range.
type Table map[string]Range

// AlertThresholds drives alert generation. Only low oxygen is abnormal;
// there is no meaningful upper bound on saturation.
var AlertThresholds = Table{
	models.VitalHeartRate:   {Min: 60, Max: 100},
	models.VitalTemperature: {Min: 36.0, Max: 38.0},
	models.VitalOxygenLevel: {Min: 95, Max: math.Inf(1)},
	models.VitalBPSystolic:  {Min: 90, Max: 140},
	models.VitalBPDiastolic: {Min: 60, Max: 90},
}

// DisplayThresholds styles readings in detail views. It is a near duplicate
// of AlertThresholds but the clinical source keeps the two rule sets apart,
// so they stay separate tables here as well.
var DisplayThresholds = Table{
	models.VitalHeartRate:   {Min: 60, Max: 100},
	models.VitalTemperature: {Min: 36.0, Max: 38.0},
	models.VitalOxygenLevel: {Min: 95, Max: math.Inf(1)},
	models.VitalBPSystolic:  {Min: 90, Max: 140},
	models.VitalBPDiastolic: {Min: 60, Max: 90},
}

// Lookup returns the normal range for kind and whether the table knows it.
func (t Table) Lookup(kind string) (Range, bool) {
	r, ok := t[kind]
	return r, ok
}
