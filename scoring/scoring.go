// Package scoring turns per-tick drift telemetry into points, combos,
// and session statistics. It consumes only the drift boolean, signed
// drift angle, and speed the dynamics engine pushes each tick.
package scoring

import (
	"math"

	"github.com/driftworks/driftline/parameter"
)

// DriftScore accumulates one session of drift scoring. Single-writer:
// the game loop calls Update once per tick; readers use Stats.
type DriftScore struct {
	inDrift         bool
	currentScore    float64
	currentAngle    float64
	currentTime     float64
	currentMaxAngle float64

	comboMultiplier int
	comboTimer      float64

	totalScore  int64
	sessionBest int64
	allTimeBest int64

	totalDrifts   int
	driftDistance float64
	longestDrift  float64
	highestAngle  float64

	// Banked points since the last Consume call, for the money reward
	banked int
}

func NewDriftScore() *DriftScore {
	return &DriftScore{comboMultiplier: 1}
}

// Reset clears the session but keeps the all-time best.
func (s *DriftScore) Reset() {
	allTime := s.allTimeBest
	*s = DriftScore{comboMultiplier: 1, allTimeBest: allTime}
}

// Update advances scoring by one tick of drift telemetry.
func (s *DriftScore) Update(isDrifting bool, driftAngle, speed, dt float64) {
	if s.comboTimer > 0 {
		s.comboTimer -= dt
		if s.comboTimer <= 0 {
			s.comboMultiplier = 1
		}
	}

	if !isDrifting {
		if s.inDrift {
			s.bank()
		}
		return
	}

	if !s.inDrift {
		s.inDrift = true
		s.currentScore = 0
		s.currentTime = 0
		s.currentMaxAngle = 0
	}

	s.currentAngle = math.Abs(driftAngle)
	s.currentTime += dt
	s.currentMaxAngle = math.Max(s.currentMaxAngle, s.currentAngle)
	s.currentScore += s.frameScore(s.currentAngle, speed, dt)
	s.driftDistance += speed * dt
}

// frameScore is angle-driven with multiplicative speed and duration
// bonuses, plus an extra multiplier past the bonus angle.
func (s *DriftScore) frameScore(angle, speed, dt float64) float64 {
	angleScore := angle * parameter.DriftScorePerDegree
	if angle > parameter.DriftAngleBonusDeg {
		angleScore *= parameter.DriftAngleBonus
	}
	speedBonus := 1.0 + speed*parameter.SpeedBonusPerMS
	timeBonus := 1.0 + s.currentTime*parameter.TimeBonusPerSecond
	return angleScore * speedBonus * timeBonus * dt
}

// bank closes the current drift: the combo multiplies the accumulated
// score into the totals and the combo window restarts.
func (s *DriftScore) bank() {
	if s.currentScore > 0 {
		final := int64(s.currentScore * float64(s.comboMultiplier))

		s.banked = int(final)
		s.totalScore += final
		s.totalDrifts++

		if final > s.sessionBest {
			s.sessionBest = final
		}
		if final > s.allTimeBest {
			s.allTimeBest = final
		}
		if s.currentTime > s.longestDrift {
			s.longestDrift = s.currentTime
		}
		if s.currentMaxAngle > s.highestAngle {
			s.highestAngle = s.currentMaxAngle
		}

		if s.comboMultiplier < parameter.ComboMax {
			s.comboMultiplier++
		}
		s.comboTimer = parameter.ComboTimeout
	}

	s.inDrift = false
	s.currentScore = 0
	s.currentTime = 0
	s.currentAngle = 0
	s.currentMaxAngle = 0
}

// Cancel drops the in-progress drift without banking and breaks the
// combo. Used on collisions and resets.
func (s *DriftScore) Cancel() {
	s.inDrift = false
	s.currentScore = 0
	s.currentTime = 0
	s.currentAngle = 0
	s.currentMaxAngle = 0
	s.comboMultiplier = 1
	s.comboTimer = 0
}

// Consume returns and clears the points banked since the last call.
// The shop uses this as the money reward stream.
func (s *DriftScore) Consume() int {
	points := s.banked
	s.banked = 0
	return points
}

// Grade names the in-progress drift for the HUD.
func (s *DriftScore) Grade() string {
	if !s.inDrift {
		return ""
	}
	switch {
	case s.currentAngle > 60 && s.currentScore > 5000:
		return "INSANE!"
	case s.currentAngle > 50 && s.currentScore > 3000:
		return "AMAZING!"
	case s.currentAngle > 40 && s.currentScore > 2000:
		return "GREAT!"
	case s.currentAngle > 30 && s.currentScore > 1000:
		return "GOOD!"
	case s.currentAngle > 20:
		return "NICE!"
	}
	return "DRIFT!"
}

// Stats is the read-side view for HUD and session summaries.
type Stats struct {
	InDrift         bool
	CurrentScore    float64
	CurrentTime     float64
	ComboMultiplier int
	ComboRemaining  float64 // Fraction of the combo window left
	TotalScore      int64
	SessionBest     int64
	AllTimeBest     int64
	TotalDrifts     int
	DriftDistance   float64
	LongestDrift    float64
	HighestAngle    float64
}

func (s *DriftScore) Stats() Stats {
	return Stats{
		InDrift:         s.inDrift,
		CurrentScore:    s.currentScore,
		CurrentTime:     s.currentTime,
		ComboMultiplier: s.comboMultiplier,
		ComboRemaining:  math.Max(s.comboTimer, 0) / parameter.ComboTimeout,
		TotalScore:      s.totalScore,
		SessionBest:     s.sessionBest,
		AllTimeBest:     s.allTimeBest,
		TotalDrifts:     s.totalDrifts,
		DriftDistance:   s.driftDistance,
		LongestDrift:    s.longestDrift,
		HighestAngle:    s.highestAngle,
	}
}
