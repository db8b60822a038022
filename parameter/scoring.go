package parameter

// Drift scoring
const (
	DriftScorePerDegree = 100.0 // Points per degree of drift angle per second
	DriftAngleBonusDeg  = 45.0  // Angle beyond which the bonus multiplier applies
	DriftAngleBonus     = 1.5
	SpeedBonusPerMS     = 0.1 // Score bonus per m/s of speed
	TimeBonusPerSecond  = 0.2 // Score bonus per second of sustained drift

	ComboTimeout = 2.0 // Seconds between banked drifts to keep the combo
	ComboMax     = 10
)
