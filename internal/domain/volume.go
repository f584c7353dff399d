package domain

import "time"

// Volume summarizes training load over a date range [From, To).
type Volume struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Workouts int       `json:"workouts"`
	Sets     int       `json:"sets"`
	Reps     int       `json:"reps"`
	Tonnage  float64   `json:"tonnageKg"` // sum of weight x reps
}

// VolumeSummary is the week and month volume around a reference date.
type VolumeSummary struct {
	Week  Volume `json:"week"`
	Month Volume `json:"month"`
}
