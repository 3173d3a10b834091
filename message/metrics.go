package message

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messagesProcessed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "luxpos_messages_processed_total",
		Help: "Dispatched messages handled, by result.",
	},
	[]string{"result"},
)
