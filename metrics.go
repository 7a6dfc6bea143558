package codevf

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var tasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "codevf_client",
		Name:      "tasks_created_total",
		Help:      "Tasks accepted by the API, by service mode.",
	},
	[]string{"mode"},
)
