package purpleair_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/stratus/internal/adapters/purpleair"
	"github.com/okian/stratus/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// historyHandler serves one synthetic sample per requested page and
// echoes the requested range back in the envelope. Assertions cannot
// run on the server goroutine, so violations are reported via t.
func historyHandler(t *testing.T, pages *int32) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/keys" {
			w.WriteHeader(http.StatusOK)
			return
		}

		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("unexpected api key header: %q", got)
		}
		q := r.URL.Query()
		if got := q.Get("fields"); got != "humidity,temperature,pressure" {
			t.Errorf("unexpected fields param: %q", got)
		}

		n := atomic.AddInt32(pages, 1)
		start, _ := strconv.ParseInt(q.Get("start_timestamp"), 10, 64)
		end, _ := strconv.ParseInt(q.Get("end_timestamp"), 10, 64)
		resp := map[string]interface{}{
			"start_timestamp": start,
			"end_timestamp":   end,
			"fields":          []string{"humidity", "temperature", "pressure"},
			"data": [][]float64{
				{float64(start), float64(n), 70.0, 1000.0},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func TestClient_History(t *testing.T) {
	ctx := context.Background()

	Convey("Given a station with three pages of history", t, func() {
		var pages int32
		srv := httptest.NewServer(historyHandler(t, &pages))
		defer srv.Close()

		client := purpleair.NewClient("test-key",
			purpleair.WithBaseURL(srv.URL),
			purpleair.WithPageSpan(24*time.Hour),
			purpleair.WithRequestDelay(0),
		)

		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := start.Add(3 * 24 * time.Hour)

		Convey("When fetching the full range", func() {
			history, err := client.History(ctx, 42, start, end)

			Convey("Then every page is fetched and concatenated", func() {
				So(err, ShouldBeNil)
				So(atomic.LoadInt32(&pages), ShouldEqual, 3)
				So(history.Data, ShouldHaveLength, 3)
			})

			Convey("And the envelope covers the whole range", func() {
				So(err, ShouldBeNil)
				So(history.StartTimestamp, ShouldEqual, start.Unix())
				So(history.EndTimestamp, ShouldEqual, end.Unix())
			})
		})
	})

	Convey("Given a server that fails once then recovers", t, func() {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"start_timestamp": 0,
				"end_timestamp":   0,
				"fields":          []string{"humidity", "temperature", "pressure"},
				"data":            [][]float64{{1, 2, 3, 4}},
			})
		}))
		defer srv.Close()

		client := purpleair.NewClient("test-key",
			purpleair.WithBaseURL(srv.URL),
			purpleair.WithPageSpan(24*time.Hour),
			purpleair.WithRequestDelay(0),
			purpleair.WithMaxRetries(2),
		)

		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		Convey("When fetching a single page", func() {
			history, err := client.History(ctx, 42, start, start.Add(24*time.Hour))

			Convey("Then the transient failure is retried", func() {
				So(err, ShouldBeNil)
				So(atomic.LoadInt32(&calls), ShouldEqual, 2)
				So(history.Data, ShouldHaveLength, 1)
			})
		})
	})

	Convey("Given a server that always returns 500", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := purpleair.NewClient("test-key",
			purpleair.WithBaseURL(srv.URL),
			purpleair.WithPageSpan(24*time.Hour),
			purpleair.WithRequestDelay(0),
			purpleair.WithMaxRetries(1),
		)

		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		Convey("Then the fetch gives up after the retry budget", func() {
			_, err := client.History(ctx, 42, start, start.Add(24*time.Hour))
			So(errors.Is(err, purpleair.ErrRetriesExhausted), ShouldBeTrue)
		})
	})

	Convey("Given a server that rejects the request outright", t, func() {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		client := purpleair.NewClient("bad-key",
			purpleair.WithBaseURL(srv.URL),
			purpleair.WithPageSpan(24*time.Hour),
			purpleair.WithRequestDelay(0),
			purpleair.WithMaxRetries(3),
		)

		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		Convey("Then a client error is not retried", func() {
			_, err := client.History(ctx, 42, start, start.Add(24*time.Hour))
			So(errors.Is(err, purpleair.ErrAPIStatus), ShouldBeTrue)
			So(atomic.LoadInt32(&calls), ShouldEqual, 1)
		})
	})
}

func TestClient_CheckKey(t *testing.T) {
	ctx := context.Background()

	Convey("Given a server that accepts the key", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/keys" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := purpleair.NewClient("test-key", purpleair.WithBaseURL(srv.URL))

		Convey("Then CheckKey succeeds", func() {
			So(client.CheckKey(ctx), ShouldBeNil)
		})
	})

	Convey("Given a server that rejects the key", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := purpleair.NewClient("bad-key",
			purpleair.WithBaseURL(srv.URL),
			purpleair.WithRequestDelay(0),
		)

		Convey("Then CheckKey fails with the API status", func() {
			So(errors.Is(client.CheckKey(ctx), purpleair.ErrAPIStatus), ShouldBeTrue)
		})
	})
}
