package schedule

import (
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

const (
	DefaultDueSoonHorizonDays = 7
	DefaultOverdueCeilingDays = 30
	DefaultLapsedAfterDays    = 60
)

const (
	LabelOverdue = "overdue"
	LabelDueSoon = "due_soon"
	LabelOnTrack = "on_track"
)

// CadencePolicy holds the day thresholds used to classify clients. Day
// counts are calendar days taken in now's location.
type CadencePolicy struct {
	DueSoonHorizonDays int
	OverdueCeilingDays int
	LapsedAfterDays    int
}

func DefaultCadencePolicy() CadencePolicy {
	return CadencePolicy{
		DueSoonHorizonDays: DefaultDueSoonHorizonDays,
		OverdueCeilingDays: DefaultOverdueCeilingDays,
		LapsedAfterDays:    DefaultLapsedAfterDays,
	}
}

type Cadence struct {
	Overdue       bool   `json:"overdue"`
	DueSoon       bool   `json:"due_soon"`
	Label         string `json:"label"`
	DaysSinceLast *int   `json:"days_since_last"`
	DaysUntilDue  *int   `json:"days_until_due"`
}

func frequency(v ClientView) (int, bool) {
	if !v.Client.HasCadence() {
		return 0, false
	}
	return *v.Client.FrequencyDays, true
}

func daysSinceLast(v ClientView, now time.Time) (int, bool) {
	if v.Last == nil {
		return 0, false
	}
	return timezone.DaysBetween(v.Last.Date, now), true
}

// IsOverdue reports a client with a cadence who is past their interval,
// or past OverdueCeilingDays, or has never visited. A Next dated before
// today also counts; EnrichClient never produces one, so that case only
// applies to views assembled elsewhere.
func (p CadencePolicy) IsOverdue(v ClientView, now time.Time) bool {
	freq, ok := frequency(v)
	if !ok {
		return false
	}

	since, ok := daysSinceLast(v, now)
	if !ok {
		return true
	}

	if v.Next != nil && timezone.DaysBetween(v.Next.Date, now) > 0 {
		return true
	}

	return since > p.OverdueCeilingDays || since > freq
}

func (p CadencePolicy) IsDueSoon(v ClientView, now time.Time) bool {
	freq, ok := frequency(v)
	if !ok {
		return false
	}

	since, ok := daysSinceLast(v, now)
	if !ok {
		return false
	}

	if v.Next != nil {
		ahead := timezone.DaysBetween(now, v.Next.Date)
		if ahead >= 0 && ahead <= p.DueSoonHorizonDays {
			return false
		}
	}

	until := freq - since
	return until >= 0 && until <= p.DueSoonHorizonDays
}

// IsLapsed reports a client with nothing booked whose last visit, if any,
// is older than LapsedAfterDays. Cadence is not required.
func (p CadencePolicy) IsLapsed(v ClientView, now time.Time) bool {
	if v.Next != nil {
		return false
	}
	since, ok := daysSinceLast(v, now)
	if !ok {
		return true
	}
	return since > p.LapsedAfterDays
}

func (p CadencePolicy) Classify(v ClientView, now time.Time) Cadence {
	c := Cadence{
		Overdue: p.IsOverdue(v, now),
		DueSoon: p.IsDueSoon(v, now),
	}

	switch {
	case c.Overdue:
		c.Label = LabelOverdue
	case c.DueSoon:
		c.Label = LabelDueSoon
	default:
		c.Label = LabelOnTrack
	}

	if since, ok := daysSinceLast(v, now); ok {
		c.DaysSinceLast = &since
		if freq, ok := frequency(v); ok {
			until := freq - since
			c.DaysUntilDue = &until
		}
	}
	return c
}
