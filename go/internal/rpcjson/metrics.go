package rpcjson

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsInterceptor counts and times every unary call by procedure and
// resulting code.
type MetricsInterceptor struct {
	handled  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsInterceptor registers its collectors on reg. It panics if they
// are already registered.
func NewMetricsInterceptor(reg prometheus.Registerer) *MetricsInterceptor {
	m := &MetricsInterceptor{
		handled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cubedraft",
			Subsystem: "rpc",
			Name:      "handled_total",
			Help:      "Unary RPCs completed, by procedure and code.",
		}, []string{"procedure", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cubedraft",
			Subsystem: "rpc",
			Name:      "handling_seconds",
			Help:      "Unary RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}
	reg.MustRegister(m.handled, m.duration)
	return m
}

func (m *MetricsInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		start := time.Now()
		res, err := next(ctx, req)

		procedure := req.Spec().Procedure
		code := "ok"
		if err != nil {
			code = connect.CodeOf(err).String()
		}
		m.handled.WithLabelValues(procedure, code).Inc()
		m.duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
		return res, err
	}
}

func (m *MetricsInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (m *MetricsInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next
}
