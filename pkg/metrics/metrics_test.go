package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it uses the default names", func() {
				So(manager, ShouldNotBeNil)
				So(manager.fqName("clicks_total"), ShouldEqual, "co2dash_dashboard_clicks_total")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("dash"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.clicks.WithLabelValues("map").Inc()

			Convey("Then metrics land on that registry under the custom names", func() {
				v, err := total(registry, "test_dash_clicks_total")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 1)
			})
		})

		Convey("When empty options are given", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithConstLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "co2dash")
				So(manager.subsystem, ShouldEqual, "dashboard")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When clicks are recorded", func() {
			before, _ := Total("clicks_total")
			RecordClick("map")
			RecordClick("trend")
			after, err := Total("clicks_total")

			Convey("Then the counter grows", func() {
				So(err, ShouldBeNil)
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When dataset rows are recorded", func() {
			RecordDatasetRows("emissions", "kept", 10)
			before, _ := Total("dataset_rows_total")
			RecordDatasetRows("emissions", "missing", 0)
			RecordDatasetRows("emissions", "malformed", -3)
			RecordDatasetRows("sectors", "kept", 4)
			after, _ := Total("dataset_rows_total")

			Convey("Then non-positive counts are ignored", func() {
				So(after-before, ShouldEqual, 4)
			})
		})

		Convey("When the active session gauge is set", func() {
			UpdateSessionsActive(7)
			v, err := Total("sessions_active")

			Convey("Then the gauge reports it", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 7)
			})
		})

		Convey("When renders are recorded", func() {
			before, _ := Total("figure_render_latency_milliseconds")
			RecordRender("map", 1.5)
			after, _ := Total("figure_render_latency_milliseconds")

			Convey("Then histogram samples are counted", func() {
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When the remaining recorders are called", func() {
			Convey("Then none of them panic", func() {
				So(func() {
					RecordInvalidClick("no_points")
					RecordDatasetLoad("emissions", 12)
					RecordSessionEviction()
					RecordExport("trend", "svg", "ok", 3)
					RecordHTTPRequest("/api/callback", "POST", "200")
					RecordHTTPRequestDuration("/api/callback", "POST", "200", 2)
					RecordErrorByComponent("api", "bad_request")
					RecordErrorByEndpoint("/api/callback", "POST", "bad_request")
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("When an unknown metric is requested", func() {
			_, err := Total("no_such_metric")

			Convey("Then ErrUnknownMetric is returned", func() {
				So(errors.Is(err, ErrUnknownMetric), ShouldBeTrue)
			})
		})

		Convey("Then the registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
