package model

import "time"

// Bar is a single daily close record.
type Bar struct {
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`
}

// RawSeries holds the daily close series for one instrument as fetched
// from the provider. Bars are ordered ascending by time and may be empty.
type RawSeries struct {
	Label     string
	Symbol    string
	Bars      []Bar
	FetchedAt time.Time
}

// NormalizedSeries is a RawSeries with a baseline-relative percentage
// return column. PctChange is aligned with Bars:
//
//	PctChange[t] = (Bars[t].Close - Bars[0].Close) / Bars[0].Close * 100
//
// For an empty series PctChange is nil.
type NormalizedSeries struct {
	RawSeries
	PctChange []float64
}

// Empty reports whether the series holds no bars.
func (s RawSeries) Empty() bool { return len(s.Bars) == 0 }

// Latest returns the most recent bar. ok is false for an empty series.
func (s RawSeries) Latest() (bar Bar, ok bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Previous returns the second most recent bar. ok is false when fewer
// than two bars exist.
func (s RawSeries) Previous() (bar Bar, ok bool) {
	if len(s.Bars) < 2 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-2], true
}
