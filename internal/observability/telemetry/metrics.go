package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FulfillmentRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songcast_fulfillment_requests_total",
		Help: "Total de requisições de fulfillment processadas",
	}, []string{"intent", "status"})

	DispatchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "songcast_dispatch_latency_seconds",
		Help:    "Latência do despacho de intents",
		Buckets: prometheus.DefBuckets,
	})

	PushNotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songcast_push_notifications_total",
		Help: "Total de notificações push enviadas",
	}, []string{"status"})

	SchemaRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songcast_webhook_schema_total",
		Help: "Total de requisições por versão de schema",
	}, []string{"version"})
)
