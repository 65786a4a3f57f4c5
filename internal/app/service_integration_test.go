package service_test

import (
	"context"
	"testing"

	service "github.com/shayanxjavid/Feedback-Hub/internal/app"
	"github.com/shayanxjavid/Feedback-Hub/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// These tests run the service against the real VADER analyzer.

func TestService_Integration_Analyze(t *testing.T) {
	Convey("Given a started service with the default analyzer", t, func() {
		svc := service.New()
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When analyzing clearly positive feedback", func() {
			result, err := svc.Analyze(context.Background(), "I love this product! It's amazing!")

			Convey("Then it should be labeled positive", func() {
				So(err, ShouldBeNil)
				So(result.Label, ShouldEqual, types.LabelPositive)
				So(result.Score, ShouldBeGreaterThan, 0.5)
				So(result.Details, ShouldContainKey, "compound")
				So(result.Details, ShouldContainKey, "positive")
				So(result.Details, ShouldContainKey, "negative")
				So(result.Details, ShouldContainKey, "neutral")
			})
		})

		Convey("When analyzing clearly negative feedback", func() {
			result, err := svc.Analyze(context.Background(), "This is terrible. Absolutely awful experience.")

			Convey("Then it should be labeled negative", func() {
				So(err, ShouldBeNil)
				So(result.Label, ShouldEqual, types.LabelNegative)
				So(result.Score, ShouldBeLessThan, 0.5)
			})
		})

		Convey("When analyzing a mixed batch", func() {
			texts := []string{
				"Great product!",
				"The invoice lists three items.",
				"Terrible experience.",
			}
			results, err := svc.AnalyzeBatch(context.Background(), texts)

			Convey("Then every position should hold a result in order", func() {
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, 3)
				So(results[0].Result.Label, ShouldEqual, types.LabelPositive)
				So(results[2].Result.Label, ShouldEqual, types.LabelNegative)
				for _, item := range results {
					So(item.Result, ShouldNotBeNil)
					So(item.Result.Score, ShouldBeBetweenOrEqual, 0, 1)
				}
			})
		})
	})

	Convey("Given a started service with markup stripping", t, func() {
		svc := service.New(service.WithMarkupStripping(true))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When analyzing markdown feedback", func() {
			result, err := svc.Analyze(context.Background(), "I **love** this [product](https://example.com)!")

			Convey("Then it should still classify successfully", func() {
				So(err, ShouldBeNil)
				So(result.Label, ShouldEqual, types.LabelPositive)
			})
		})
	})
}
