// Package schedule defines the interval scheduling used by the norrisbot
// heartbeat on top of gocron
package schedule

import (
	"fmt"
	"github.com/marcsantiago/gocron"
	"strings"
)

// Definition represents a recurring schedule as an interval and a time unit,
// with an optional "at time" value (i.e. "10:30")
type Definition struct {
	// Interval count (every 1 minute would be expressed with an interval of 1)
	Interval uint64

	// One of the unit constants below
	Unit string

	// Optional "at time" value, only meaningful for Days
	AtTime string
}

// Unit values
const (
	Hours   = "hours"
	Days    = "days"
	Minutes = "minutes"
	Seconds = "seconds"
)

// String returns a human-friendly rendering of the Definition
func (d Definition) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Every ")

	if d.Interval == 1 {
		fmt.Fprintf(&b, "%s", strings.TrimSuffix(d.Unit, "s"))
	} else {
		fmt.Fprintf(&b, "%d %s", d.Interval, d.Unit)
	}

	if d.AtTime != "" {
		fmt.Fprintf(&b, " at %s", d.AtTime)
	}

	return b.String()
}

// NewJob sets up a gocron.Job on the scheduler with the Definition's
// recurrence and leaves the task for the caller to attach with Do
func NewJob(s *gocron.Scheduler, d Definition) (j *gocron.Job, err error) {
	j = s.Every(d.Interval, false)

	switch d.Unit {
	case Hours:
		j = j.Hours()
	case Days:
		j = j.Days()
	case Minutes:
		j = j.Minutes()
	case Seconds:
		j = j.Seconds()
	default:
		return nil, fmt.Errorf("invalid schedule unit [%s]", d.Unit)
	}

	if d.AtTime != "" {
		j = j.At(d.AtTime)
	}

	if j.Err() != nil {
		return nil, j.Err()
	}

	return j, nil
}
