package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pet_donor_connect",
		Name:      "connection_requests_total",
		Help:      "Total de solicitudes de conexión creadas",
	})
	MatchesConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pet_donor_connect",
		Name:      "matches_confirmed_total",
		Help:      "Total de matches confirmados",
	})
	NotificationsPostedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pet_donor_connect",
		Name:      "notifications_posted_total",
		Help:      "Total de notificaciones escritas a buzones",
	})
	GeocodeLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pet_donor_connect",
		Name:      "geocode_lookups_total",
		Help:      "Lookups de geocoding por resultado",
	}, []string{"outcome"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pet_donor_connect",
		Name:      "http_requests_total",
		Help:      "Total de requests HTTP atendidos",
	}, []string{"method", "route", "status"})
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pet_donor_connect",
		Name:      "http_request_duration_seconds",
		Help:      "Latencia HTTP por ruta",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
