package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shayanxjavid/Feedback-Hub/internal/adapters/http/api"
	service "github.com/shayanxjavid/Feedback-Hub/internal/app"
	"github.com/shayanxjavid/Feedback-Hub/internal/domain/polarity"
	"github.com/shayanxjavid/Feedback-Hub/internal/domain/types"
	"github.com/shayanxjavid/Feedback-Hub/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// scriptedAnalyzer returns canned scores and failures keyed by text.
type scriptedAnalyzer struct {
	compounds map[string]float64
	failures  map[string]error
}

func (a *scriptedAnalyzer) Score(_ context.Context, text string) (polarity.Scores, error) {
	if err, ok := a.failures[text]; ok {
		return polarity.Scores{}, err
	}
	if compound, ok := a.compounds[text]; ok {
		return polarity.Scores{Compound: compound, Positive: 0.45, Neutral: 0.55}, nil
	}
	return polarity.Scores{Neutral: 1.0}, nil
}

// newTestMux builds a mux backed by a started service over the analyzer.
func newTestMux(t *testing.T, analyzer polarity.Analyzer) *http.ServeMux {
	t.Helper()
	svc := service.New(service.WithAnalyzer(analyzer), service.WithBatchWorkers(2))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux
}

func doJSON(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t, &scriptedAnalyzer{})

		Convey("When requesting the info endpoint", func() {
			w := doJSON(mux, "GET", "/", "")

			Convey("Then it should describe the service", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var info map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &info), ShouldBeNil)
				So(info["service"], ShouldEqual, "Sentiment Analysis Microservice")
				So(info["analyze"], ShouldEqual, "POST /analyze")
				So(info["health"], ShouldEqual, "/health")
			})
		})

		Convey("When requesting an unknown path", func() {
			w := doJSON(mux, "GET", "/nope", "")

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When requesting the health endpoint", func() {
			w := doJSON(mux, "GET", "/health", "")

			Convey("Then it should report healthy with a UTC timestamp", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var health map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &health), ShouldBeNil)
				So(health["status"], ShouldEqual, "healthy")
				So(health["service"], ShouldEqual, "sentiment-analyzer")
				So(strings.HasSuffix(health["timestamp"], "Z"), ShouldBeTrue)
				_, err := time.Parse(time.RFC3339, health["timestamp"])
				So(err, ShouldBeNil)
			})
		})

		Convey("When requesting the stats endpoint", func() {
			w := doJSON(mux, "GET", "/stats", "")

			Convey("Then it should return service stats", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var stats map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When requesting the metrics endpoint", func() {
			w := doJSON(mux, "GET", "/metrics", "")

			Convey("Then it should serve Prometheus metrics", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestAnalyzeEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		analyzer := &scriptedAnalyzer{compounds: map[string]float64{
			"I love this product! It's amazing!": 0.81,
		}}
		mux := newTestMux(t, analyzer)

		Convey("When analyzing a valid text", func() {
			w := doJSON(mux, "POST", "/analyze", `{"text": "I love this product! It's amazing!"}`)

			Convey("Then it should return the sentiment result", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var result types.Result
				So(json.Unmarshal(w.Body.Bytes(), &result), ShouldBeNil)
				So(result.Label, ShouldEqual, types.LabelPositive)
				So(result.Score, ShouldEqual, 0.91)
				So(result.Details["compound"], ShouldEqual, 0.81)
				So(result.Details["positive"], ShouldEqual, 0.45)
				So(result.Details["neutral"], ShouldEqual, 0.55)
			})
		})

		Convey("When analyzing an empty text", func() {
			w := doJSON(mux, "POST", "/analyze", `{"text": ""}`)

			Convey("Then it should return 400 with a validation error", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var resp map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "validation_error")
			})
		})

		Convey("When analyzing a text over the length limit", func() {
			body, err := json.Marshal(map[string]string{"text": strings.Repeat("a", 10_001)})
			So(err, ShouldBeNil)
			w := doJSON(mux, "POST", "/analyze", string(body))

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When analyzing a text at exactly the length limit", func() {
			body, err := json.Marshal(map[string]string{"text": strings.Repeat("a", 10_000)})
			So(err, ShouldBeNil)
			w := doJSON(mux, "POST", "/analyze", string(body))

			Convey("Then it should be accepted", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When the request body is not valid JSON", func() {
			w := doJSON(mux, "POST", "/analyze", `{"text": `)

			Convey("Then it should return 400 with a bad request error", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var resp map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When using the wrong method", func() {
			w := doJSON(mux, "GET", "/analyze", "")

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})

	Convey("Given an analyzer that fails", t, func() {
		analyzer := &scriptedAnalyzer{failures: map[string]error{
			"broken": errors.New("lexicon exploded"),
		}}
		mux := newTestMux(t, analyzer)

		Convey("When analyzing the failing text", func() {
			w := doJSON(mux, "POST", "/analyze", `{"text": "broken"}`)

			Convey("Then it should return 500 with the underlying cause", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				var resp map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "analysis_failed")
				So(resp["message"], ShouldContainSubstring, "lexicon exploded")
			})
		})
	})
}

func TestAnalyzeBatchEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		analyzer := &scriptedAnalyzer{
			compounds: map[string]float64{
				"Great product!":       0.7,
				"Terrible experience.": -0.7,
			},
			failures: map[string]error{
				strings.Repeat("x", 80): errors.New("scoring blew up"),
			},
		}
		mux := newTestMux(t, analyzer)

		Convey("When analyzing a well-formed batch", func() {
			w := doJSON(mux, "POST", "/analyze/batch",
				`[{"text": "Great product!"}, {"text": "Terrible experience."}]`)

			Convey("Then results should come back in input order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Results []types.BatchItem `json:"results"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(len(resp.Results), ShouldEqual, 2)
				So(resp.Results[0].Result.Label, ShouldEqual, types.LabelPositive)
				So(resp.Results[1].Result.Label, ShouldEqual, types.LabelNegative)
			})
		})

		Convey("When analyzing an empty batch", func() {
			w := doJSON(mux, "POST", "/analyze/batch", `[]`)

			Convey("Then it should return an empty result sequence", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Results []types.BatchItem `json:"results"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Results, ShouldBeEmpty)
			})
		})

		Convey("When the batch exceeds 100 items", func() {
			items := make([]string, 101)
			for i := range items {
				items[i] = `{"text": "Great product!"}`
			}
			w := doJSON(mux, "POST", "/analyze/batch", "["+strings.Join(items, ",")+"]")

			Convey("Then the whole batch should be rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var resp map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["message"], ShouldContainSubstring, "maximum 100 texts")
			})
		})

		Convey("When the batch contains an invalid item", func() {
			w := doJSON(mux, "POST", "/analyze/batch",
				`[{"text": "Great product!"}, {"text": ""}]`)

			Convey("Then the whole batch should be rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When one item's analysis fails", func() {
			failing := strings.Repeat("x", 80)
			body, err := json.Marshal([]map[string]string{
				{"text": "Great product!"},
				{"text": failing},
				{"text": "Terrible experience."},
			})
			So(err, ShouldBeNil)
			w := doJSON(mux, "POST", "/analyze/batch", string(body))

			Convey("Then siblings succeed and the failure is isolated", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Results []types.BatchItem `json:"results"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(len(resp.Results), ShouldEqual, 3)
				So(resp.Results[0].Result, ShouldNotBeNil)
				So(resp.Results[2].Result, ShouldNotBeNil)
				So(resp.Results[1].Result, ShouldBeNil)
				So(resp.Results[1].Error, ShouldContainSubstring, "scoring blew up")
				So(resp.Results[1].Text, ShouldEqual, strings.Repeat("x", 50)+"...")
			})
		})

		Convey("When the batch body is not a JSON array", func() {
			w := doJSON(mux, "POST", "/analyze/batch", `{"text": "not an array"}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}
