package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

type cycleFunc = func(ctx context.Context) error

// RecordPollerDuration times every run of cycle under the given poller name,
// labelled by whether the run failed.
func RecordPollerDuration(poller string, cycle cycleFunc) cycleFunc {
	return func(ctx context.Context) (err error) {
		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(seconds float64) {
			pollerDurationHistogram.WithLabelValues(poller, outcomeOf(err != nil).String()).Observe(seconds)
		}))
		defer timer.ObserveDuration()

		return cycle(ctx)
	}
}
