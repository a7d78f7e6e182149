package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "paragon")
				So(manager.subsystem, ShouldEqual, "entities")
				So(manager.enabled, ShouldBeTrue)
				So(manager.refreshInterval, ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.metricPrefix, ShouldEqual, "test_prefix")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.enabled, ShouldBeFalse)
				So(manager.refreshInterval, ShouldEqual, 5*time.Second)
				So(manager.customLabels, ShouldResemble, map[string]string{"env": "test"})
			})

			Convey("And metric names should carry the prefix", func() {
				manager.clientRequests.WithLabelValues("company", "GET", "200").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_namespace_test_subsystem_test_prefix_client_requests_total")
			})
		})

		Convey("When creating with empty or invalid option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithRefreshInterval(-1*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "paragon")
				So(manager.subsystem, ShouldEqual, "entities")
				So(manager.metricPrefix, ShouldEqual, "")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
				So(manager.refreshInterval, ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording entity client requests", func() {
			before := testutil.ToFloat64(globalManager.clientRequests.WithLabelValues("company", "POST", "201"))
			RecordClientRequest("company", "POST", "201", 12.5)
			RecordClientRequest("company", "POST", "201", 3)

			Convey("Then the request counter should increase", func() {
				after := testutil.ToFloat64(globalManager.clientRequests.WithLabelValues("company", "POST", "201"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When recording entity client errors", func() {
			before := testutil.ToFloat64(globalManager.clientErrors.WithLabelValues("company", "status"))
			RecordClientError("company", "status")

			Convey("Then the error counter should increase", func() {
				after := testutil.ToFloat64(globalManager.clientErrors.WithLabelValues("company", "status"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When recording store state", func() {
			UpdateStoredEntities("company", 42)
			before := testutil.ToFloat64(globalManager.storeMutations.WithLabelValues("company", "create"))
			RecordStoreMutation("company", "create")

			Convey("Then the gauge and counter should reflect it", func() {
				So(testutil.ToFloat64(globalManager.storedEntities.WithLabelValues("company")), ShouldEqual, 42)
				So(testutil.ToFloat64(globalManager.storeMutations.WithLabelValues("company", "create"))-before, ShouldEqual, 1)
			})
		})

		Convey("When recording server and system metrics", func() {
			Convey("Then nothing should panic", func() {
				So(func() {
					RecordHTTPRequest("companies", "GET", "200")
					RecordHTTPRequestDuration("companies", "GET", "200", 5.0)
					RecordErrorByType("not_found", "medium")
					RecordErrorByEndpoint("company", "GET", "not_found")
					RecordSeeded("company", "success")
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(12)
				}, ShouldNotPanic)
			})
		})

		Convey("When metrics are disabled", func() {
			prev := globalManager.enabled
			globalManager.enabled = false
			defer func() { globalManager.enabled = prev }()

			before := testutil.ToFloat64(globalManager.clientRequests.WithLabelValues("company", "DELETE", "204"))
			RecordClientRequest("company", "DELETE", "204", 1)

			Convey("Then client requests should not be counted", func() {
				after := testutil.ToFloat64(globalManager.clientRequests.WithLabelValues("company", "DELETE", "204"))
				So(after, ShouldEqual, before)
			})
		})

		Convey("Then the registry and refresh interval should be exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
			So(RefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			for i := 0; i < 10; i++ {
				go func() {
					for j := 0; j < 100; j++ {
						RecordClientRequest("company", "GET", "200", float64(j))
						RecordHTTPRequest("companies", "GET", "200")
						UpdateStoredEntities("company", j)
					}
					done <- true
				}()
			}

			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue)
			})
		})
	})
}
