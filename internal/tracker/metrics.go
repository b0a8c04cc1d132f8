package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	logsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interntrack_logs_submitted_total",
		Help: "Daily log entries submitted by students.",
	})
	checkIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interntrack_checkins_total",
		Help: "Geofenced check-in attempts by result.",
	}, []string{"result"})
	badgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interntrack_badges_awarded_total",
		Help: "Badges awarded by badge id.",
	}, []string{"badge"})
)
