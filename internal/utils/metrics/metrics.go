package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BeersRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beertrack",
		Name:      "beers_recorded_total",
		Help:      "Units recorded in the ledger, by source.",
	}, []string{"source"})

	BeersRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beertrack",
		Name:      "beers_removed_total",
		Help:      "Units removed from the ledger, by reason.",
	}, []string{"reason"})

	FriendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beertrack",
		Name:      "friend_requests_total",
		Help:      "Friend request transitions, by outcome.",
	}, []string{"outcome"})

	SessionsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "beertrack",
		Name:      "sessions_purged_total",
		Help:      "Expired sessions removed lazily or by the sweeper.",
	})
)

const (
	SourceManual = "manual"
	SourcePhoto  = "photo"

	ReasonDecrement = "decrement"
	ReasonDelete    = "delete"

	OutcomeSent     = "sent"
	OutcomeAccepted = "accepted"
	OutcomeDeclined = "declined"
)
