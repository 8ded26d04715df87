package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"queuecare/internal/load"
)

var (
	ticketOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queuecare_ticket_operations_total",
			Help: "Total ticket operations by result",
		},
		[]string{"operation", "status"},
	)

	departmentLoad = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "queuecare_department_load",
			Help: "Current number of not completed tickets per department",
		},
		[]string{"department"},
	)

	feedSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "queuecare_feed_subscribers",
			Help: "Current number of change feed subscribers",
		},
	)

	feedRelayUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "queuecare_feed_relay_up",
			Help: "1 while events are relayed from Redis to the local feed",
		},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queuecare_notifications_total",
			Help: "Notification requests by outcome",
		},
		[]string{"status"},
	)
)

// RecordOperation учитывает результат операции движка очереди.
func RecordOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ticketOperations.WithLabelValues(operation, status).Inc()
}

func RecordDepartmentLoads(loads []load.DepartmentLoad) {
	for _, l := range loads {
		departmentLoad.WithLabelValues(l.Code).Set(float64(l.CurrentLoad))
	}
}

func SetFeedSubscribers(n int) {
	feedSubscribers.Set(float64(n))
}

func SetFeedRelayUp(up bool) {
	if up {
		feedRelayUp.Set(1)
		return
	}
	feedRelayUp.Set(0)
}

// RecordNotification учитывает уведомление; status принимает значения enqueued, dropped, sent или failed.
func RecordNotification(status string) {
	notifications.WithLabelValues(status).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
