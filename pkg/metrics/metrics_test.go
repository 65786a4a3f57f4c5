package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording business metrics", func() {
			RecordAnalysis("positive")
			RecordAnalysis("negative")
			RecordAnalysisLatency(1.5)
			ObserveTextLength(42)
			RecordAnalysisError()
			RecordValidationError()

			Convey("Then no panics should occur", func() {
				So(globalManager, ShouldNotBeNil)
			})
		})

		Convey("When recording batch metrics", func() {
			RecordBatchRequest()
			ObserveBatchSize(10)
			RecordBatchItemError()

			Convey("Then no panics should occur", func() {
				So(globalManager, ShouldNotBeNil)
			})
		})

		Convey("When recording HTTP metrics", func() {
			RecordHTTPRequest("analyze", "POST", "200")
			RecordHTTPRequestDuration("analyze", "POST", "200", 3.2)
			RecordErrorByEndpoint("analyze", "POST", "client_error")

			Convey("Then no panics should occur", func() {
				So(globalManager, ShouldNotBeNil)
			})
		})

		Convey("When updating system metrics", func() {
			UpdateSystemMemoryUsage(1024)
			UpdateSystemGoroutineCount(8)
			RecordSystemGCPauseTime(0.3)

			Convey("Then the registry should be available for serving", func() {
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
