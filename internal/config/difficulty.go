package config

import "math"

// SpeedCurve maps the global score to obstacle speed.
// Speed grows geometrically: every Every points multiply it by Growth.
// It is recomputed from score alone, so any tick path reaching the same
// score yields the same speed.
type SpeedCurve struct {
	Base   float64 `yaml:"base"`
	Growth float64 `yaml:"growth"`
	Every  int     `yaml:"every"`
}

// At returns the obstacle speed for the given score.
func (s SpeedCurve) At(score int) float64 {
	if s.Every <= 0 || score <= 0 {
		return s.Base
	}
	return s.Base * math.Pow(s.Growth, float64(score/s.Every))
}

// Level returns how many speed thresholds the score has crossed.
func (s SpeedCurve) Level(score int) int {
	if s.Every <= 0 || score <= 0 {
		return 0
	}
	return score / s.Every
}
