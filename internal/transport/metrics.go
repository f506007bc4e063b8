// Package transport – Prometheus instrumentation.
//
// The Metrics decorator measures outbound traffic with careful attention to
// label cardinality:
//
//   - method: HTTP method verb (GET/POST/…)
//   - path:   the request path with numeric identifier segments collapsed to
//     ":id" (e.g. /orders/:id/status), keeping the label set bounded
//   - status: numeric status code as a string, or "error" for transport
//     failures that never produced a status
//
// Retry and token-acquisition counters live here too and are incremented by
// the recovery interceptor and the pipeline. All collectors are safe for
// concurrent use.
package transport

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// outboundReqs counts requests by method, collapsed path, and status.
	outboundReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wms_gateway_requests_total",
			Help: "Total number of requests issued to the WMS backend.",
		},
		[]string{"method", "path", "status"},
	)

	// outboundLat records round-trip duration in seconds by method and path.
	// Status is omitted to keep histogram cardinality lower.
	outboundLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wms_gateway_request_duration_seconds",
			Help:    "Duration of WMS backend round trips in seconds.",
			Buckets: prometheus.DefBuckets, // suitable for general HTTP latency
		},
		[]string{"method", "path"},
	)

	// outboundInflight gauges the number of in-flight round trips.
	outboundInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wms_gateway_requests_inflight",
			Help: "Current number of in-flight WMS backend requests.",
		},
	)

	// retries counts recovery retries after authorization rejections.
	retries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wms_gateway_auth_retries_total",
			Help: "Total number of requests retried after an authorization rejection.",
		},
	)

	// tokenAcquisitions counts security token acquisition round trips.
	tokenAcquisitions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wms_gateway_token_acquisitions_total",
			Help: "Total number of security token acquisition attempts.",
		},
	)
)

func init() {
	prometheus.MustRegister(outboundReqs, outboundLat, outboundInflight, retries, tokenAcquisitions)
}

// metricPath collapses all-digit path segments to ":id" so resource
// identifiers do not explode label cardinality.
func metricPath(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if s == "" {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segs[i] = ":id"
		}
	}
	return strings.Join(segs, "/")
}

// Metrics instruments a Doer with the collectors above.
type Metrics struct {
	next Doer
}

// NewMetrics wraps next.
func NewMetrics(next Doer) *Metrics {
	return &Metrics{next: next}
}

// Do implements Doer.
func (m *Metrics) Do(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	outboundInflight.Inc()
	defer outboundInflight.Dec()

	resp, err := m.next.Do(ctx, req)

	path := metricPath(req.Path)
	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	outboundReqs.WithLabelValues(req.Method, path, status).Inc()
	outboundLat.WithLabelValues(req.Method, path).Observe(time.Since(start).Seconds())

	return resp, err
}
