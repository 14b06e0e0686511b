package norrisbot

import (
	"github.com/alexandre-normand/norrisbot/config"
	"github.com/alexandre-normand/norrisbot/schedule"
	"github.com/marcsantiago/gocron"
	"github.com/spf13/cast"
)

// startHeartbeat schedules the periodic refresh of the lastrun setting and
// blocks running the scheduler. A wedged bot stops refreshing, which is the
// only way to tell it apart from an idle one since it never posts on its own.
// Meant to run in a go routine
func (b *Norrisbot) startHeartbeat() {
	interval := cast.ToUint64(b.config.Get(config.HeartbeatIntervalKey))
	if interval == 0 {
		b.log.Debugf("Heartbeat disabled\n")
		return
	}

	timeLoc, err := config.GetTimeLocation(b.config)
	if err != nil {
		b.log.Printf("Error loading the heartbeat time location, heartbeat disabled: %v\n", err)
		return
	}

	gocron.ChangeLoc(timeLoc)
	sc := gocron.NewScheduler()

	j, err := schedule.NewJob(sc, schedule.Definition{Interval: interval, Unit: schedule.Minutes})
	if err != nil {
		b.log.Printf("Error scheduling the heartbeat, heartbeat disabled: %v\n", err)
		return
	}

	j.Do(b.beat)

	_, t := sc.NextRun()
	b.log.Debugf("Starting heartbeat with first refresh at [%s]\n", t)

	<-sc.Start()
}

// beat refreshes the lastrun marker
func (b *Norrisbot) beat() {
	if err := b.updateLastRun(); err != nil {
		b.log.Printf("Error refreshing [%s]: %v\n", lastRunKey, err)
	}
}
