// Package metrics declares the Prometheus collectors of the slay engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики движка
var (
	AttackResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAttackResolutions,
			Help: HelpTextAttackResolutions,
		},
		[]string{LabelSource, LabelReal},
	)

	PropertiesLearned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePropertiesLearned,
			Help: HelpTextPropertiesLearned,
		},
		[]string{LabelKind},
	)

	SlayCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSlayCacheLookups,
			Help: HelpTextSlayCacheLookups,
		},
		[]string{LabelResult},
	)

	SlayCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSlayCacheEntries,
			Help: HelpTextSlayCacheEntries,
		},
	)

	LoreRecordsFlushed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLoreRecordsFlushed,
			Help: HelpTextLoreRecordsFlushed,
		},
	)
)

// HTTP метрики
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)
)
