package model

import "fmt"

// Window is a named lookback duration, e.g. "1M". Exactly one of Months or
// Days is expected to be set; Months wins when both are.
type Window struct {
	Name   string `yaml:"name" json:"name"`
	Months int    `yaml:"months,omitempty" json:"months,omitempty"`
	Days   int    `yaml:"days,omitempty" json:"days,omitempty"`
}

// Cutoff resolves the window to its reference date relative to today.
func (w Window) Cutoff(today Date) Date {
	if w.Months > 0 {
		return today.AddMonths(-w.Months)
	}
	return today.AddDays(-w.Days)
}

// Span describes the window in words, e.g. "1 month" or "90 days".
func (w Window) Span() string {
	switch {
	case w.Months == 1:
		return "1 month"
	case w.Months > 1:
		return fmt.Sprintf("%d months", w.Months)
	case w.Days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", w.Days)
	}
}

// ApproxDays is the number of calendar days the window can cover, used to
// size provider lookbacks.
func (w Window) ApproxDays() int {
	if w.Months > 0 {
		return w.Months*31 + 1
	}
	return w.Days
}
