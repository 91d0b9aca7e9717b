package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	SuccessfulRequests *prometheus.CounterVec
	BadRequests        *prometheus.CounterVec
	MessagesSent       *prometheus.CounterVec
	FriendRequests     *prometheus.CounterVec
}

func InitMetrics() *Metrics {
	m := &Metrics{
		SuccessfulRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_request",
				Help: "Total number of successful (2xx) HTTP requests",
			},
			[]string{"path"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unsuccessful_request",
				Help: "Total number of unsuccessful (4xx/5xx) HTTP requests",
			},
			[]string{"path"},
		),
		MessagesSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_message",
				Help: "Total number of successfully sent messages",
			},
			[]string{"path"},
		),
		FriendRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_friend_requests",
				Help: "Total number of successfully sent friend requests",
			},
			[]string{"path"},
		),
	}

	prometheus.MustRegister(m.SuccessfulRequests)
	prometheus.MustRegister(m.BadRequests)
	prometheus.MustRegister(m.MessagesSent)
	prometheus.MustRegister(m.FriendRequests)

	return m
}

// RequestCounter counts request outcomes per route pattern.
func (m *Metrics) RequestCounter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if c.Writer.Status() < 400 {
			m.SuccessfulRequests.WithLabelValues(path).Inc()
		} else {
			m.BadRequests.WithLabelValues(path).Inc()
		}
	}
}
