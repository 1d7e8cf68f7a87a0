package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "decide",
		Name:      "decisions_created_total",
		Help:      "Number of decisions created.",
	})
	responsesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "decide",
		Name:      "responses_recorded_total",
		Help:      "Number of prompt answers recorded.",
	})
	duplicateResponses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "decide",
		Name:      "responses_duplicate_total",
		Help:      "Number of answers rejected because the prompt was already answered.",
	})
	decisionsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "decide",
		Name:      "decisions_classified_total",
		Help:      "Number of decisions assigned a quadrant.",
	}, []string{"quadrant"})
	catalogCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "decide",
		Name:      "catalog_cache_lookups_total",
		Help:      "Prompt catalog cache lookups by result.",
	}, []string{"result"})
)
