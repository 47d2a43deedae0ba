package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lunchvote"

var (
	MenusUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menus_uploaded_total",
		Help:      "Menus accepted for the day.",
	})

	// MenuUploadsRejected is labelled by reason: duplicate | invalid.
	MenuUploadsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_uploads_rejected_total",
		Help:      "Menu uploads turned away as business failures.",
	}, []string{"reason"})

	VotesCast = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Votes recorded.",
	})

	// VotesRejected is labelled by reason: already_voted | not_employee | menu_not_found.
	VotesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_rejected_total",
		Help:      "Vote attempts that did not change any tally.",
	}, []string{"reason"})

	// ResultsServed is labelled by outcome: winner | empty.
	ResultsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_served_total",
		Help:      "Results lookups by outcome.",
	}, []string{"outcome"})
)
