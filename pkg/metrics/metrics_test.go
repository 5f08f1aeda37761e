package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "stratus")
				So(manager.subsystem, ShouldEqual, "pipeline")
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the options should be applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test-namespace")
				So(manager.subsystem, ShouldEqual, "test-subsystem")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording pipeline events", func() {
			Convey("Then the helpers should not panic", func() {
				So(func() {
					RecordSampleRead()
					RecordSampleSkipped()
					RecordExampleValid()
					RecordExampleInvalid()
					UpdateSplitSizes(85, 15)
					RecordCollectDuration(12.5)
					RecordScrapeRequest("ok")
					RecordScrapeRequest("error")
					RecordScrapeRetry()
					RecordScrapePage()
				}, ShouldNotPanic)
			})
		})

		Convey("When gathering the registry", func() {
			RecordSampleRead()
			families, err := GetRegistry().Gather()

			Convey("Then the pipeline metrics are registered", func() {
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["stratus_pipeline_samples_read_total"], ShouldBeTrue)
				So(names["stratus_pipeline_scrape_requests_total"], ShouldBeTrue)
			})
		})

		Convey("When serving the metrics handler", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/metrics", nil)
			Handler().ServeHTTP(rec, req)

			Convey("Then it should respond with the exposition format", func() {
				So(rec.Code, ShouldEqual, 200)
				So(rec.Body.String(), ShouldContainSubstring, "stratus_pipeline_samples_read_total")
			})
		})
	})
}
