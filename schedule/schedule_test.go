package schedule_test

import (
	"github.com/alexandre-normand/norrisbot/schedule"
	"github.com/marcsantiago/gocron"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestDefinitionString(t *testing.T) {
	definitionToString := []struct {
		d              schedule.Definition
		friendlyString string
	}{
		{schedule.Definition{Interval: 1, Unit: schedule.Seconds}, "Every second"},
		{schedule.Definition{Interval: 2, Unit: schedule.Seconds}, "Every 2 seconds"},
		{schedule.Definition{Interval: 1, Unit: schedule.Minutes}, "Every minute"},
		{schedule.Definition{Interval: 10, Unit: schedule.Minutes}, "Every 10 minutes"},
		{schedule.Definition{Interval: 1, Unit: schedule.Hours}, "Every hour"},
		{schedule.Definition{Interval: 2, Unit: schedule.Hours}, "Every 2 hours"},
		{schedule.Definition{Interval: 1, Unit: schedule.Days}, "Every day"},
		{schedule.Definition{Interval: 1, Unit: schedule.Days, AtTime: "10:00"}, "Every day at 10:00"},
	}

	for _, testCase := range definitionToString {
		t.Run(testCase.friendlyString, func(t *testing.T) {
			assert.Equalf(t, testCase.friendlyString, testCase.d.String(), "Expected different string value for definition: %v", testCase.d)
		})
	}
}

func TestNewJobFromDefinition(t *testing.T) {
	definitionToResult := []struct {
		d     schedule.Definition
		valid bool
	}{
		{schedule.Definition{Interval: 1, Unit: schedule.Seconds}, true},
		{schedule.Definition{Interval: 10, Unit: schedule.Minutes}, true},
		{schedule.Definition{Interval: 2, Unit: schedule.Hours}, true},
		{schedule.Definition{Interval: 1, Unit: schedule.Days, AtTime: "10:00"}, true},
		{schedule.Definition{Interval: 1, Unit: "fortnights"}, false},
	}

	for _, testCase := range definitionToResult {
		t.Run(testCase.d.String(), func(t *testing.T) {
			s := gocron.NewScheduler()

			j, err := schedule.NewJob(s, testCase.d)
			if testCase.valid {
				assert.Nil(t, err)
				assert.NotNil(t, j)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
