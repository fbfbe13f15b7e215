package httphandler

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookie4/internal/game"
	"cookie4/internal/metrics"
	"cookie4/internal/util"
)

const emptyBoard = "⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬜⬜⬜⬜⬜\n"

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	svc := game.NewService(game.NewTable(), util.NewLockedStream(util.DefaultSeed))
	return NewRouter(NewHandler(svc, logger), RouterOptions{Logger: logger})
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestShowBoardEmpty(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/12/board")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, emptyBoard, rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))

	again := do(t, r, http.MethodGet, "/12/board")
	assert.Equal(t, rec.Body.String(), again.Body.String())
}

func TestResetThenShow(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/12/place/cookie/1").Code)

	rec := do(t, r, http.MethodPost, "/12/reset")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, emptyBoard, rec.Body.String())
	assert.Equal(t, emptyBoard, do(t, r, http.MethodGet, "/12/board").Body.String())
}

func TestPlaceBottomRowWin(t *testing.T) {
	r := newTestRouter(t)

	for col := 1; col <= 3; col++ {
		rec := do(t, r, http.MethodPost, "/12/place/team-a/"+string(rune('0'+col)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "wins!")
	}
	rec := do(t, r, http.MethodPost, "/12/place/team-a/4")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "⬜⬛⬛⬛⬛⬜\n"+
		"⬜⬛⬛⬛⬛⬜\n"+
		"⬜⬛⬛⬛⬛⬜\n"+
		"⬜🍪🍪🍪🍪⬜\n"+
		"⬜⬜⬜⬜⬜⬜\n"+
		"🍪 wins!\n", rec.Body.String())

	over := do(t, r, http.MethodPost, "/12/place/milk/2")
	assert.Equal(t, http.StatusServiceUnavailable, over.Code)
	assert.Equal(t, rec.Body.String(), over.Body.String())

	shown := do(t, r, http.MethodGet, "/12/board")
	assert.Equal(t, rec.Body.String(), shown.Body.String())
}

func TestPlaceColumnFull(t *testing.T) {
	r := newTestRouter(t)
	for _, team := range []string{"cookie", "milk", "cookie", "milk"} {
		require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/12/place/"+team+"/3").Code)
	}
	board := do(t, r, http.MethodGet, "/12/board").Body.String()

	rec := do(t, r, http.MethodPost, "/12/place/cookie/3")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, board+"No winner.\n", rec.Body.String())
	assert.Equal(t, board, do(t, r, http.MethodGet, "/12/board").Body.String())
}

func TestPlaceBadRequest(t *testing.T) {
	r := newTestRouter(t)
	paths := []string{
		"/12/place/chocolate/1",
		"/12/place/team-c/1",
		"/12/place/TEAM-A/1",
		"/12/place/Milk/2",
		"/12/place/cookie/0",
		"/12/place/cookie/5",
		"/12/place/milk/-1",
		"/12/place/milk/one",
		"/12/place/milk/99999999999999999999",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, p)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}
	assert.Equal(t, emptyBoard, do(t, r, http.MethodGet, "/12/board").Body.String())
}

func TestRandomBoardSequence(t *testing.T) {
	r := newTestRouter(t)

	first := do(t, r, http.MethodGet, "/12/random-board")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "⬜🍪🍪🍪🍪⬜\n"+
		"⬜🥛🍪🍪🥛⬜\n"+
		"⬜🥛🥛🥛🥛⬜\n"+
		"⬜🍪🥛🍪🥛⬜\n"+
		"⬜⬜⬜⬜⬜⬜\n"+
		"🍪 wins!\n", first.Body.String())

	second := do(t, r, http.MethodGet, "/12/random-board")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "⬜🍪🥛🍪🍪⬜\n"+
		"⬜🥛🍪🥛🍪⬜\n"+
		"⬜🥛🍪🍪🍪⬜\n"+
		"⬜🍪🥛🥛🥛⬜\n"+
		"⬜⬜⬜⬜⬜⬜\n"+
		"No winner.\n", second.Body.String())

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/12/reset").Code)
	assert.Equal(t, first.Body.String(), do(t, r, http.MethodGet, "/12/random-board").Body.String())
}

func TestMethodAndRouteErrors(t *testing.T) {
	r := newTestRouter(t)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, r, http.MethodGet, "/12/reset").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, r, http.MethodGet, "/12/place/cookie/1").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/12/nope").Code)
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestPanicIsOpaque500(t *testing.T) {
	r := newTestRouter(t)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("board exploded") })

	rec := do(t, r, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "exploded")
}

func TestAccessLogAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Formatter: log.LogfmtFormatter})
	mock := clock.NewMock()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "test")

	svc := game.NewService(game.NewTable(), util.NewLockedStream(util.DefaultSeed), game.WithRecorder(m))
	r := NewRouter(NewHandler(svc, logger), RouterOptions{Logger: logger, Clock: mock, Metrics: m, Gatherer: reg})
	r.Get("/slow", func(w http.ResponseWriter, _ *http.Request) {
		mock.Add(250 * time.Millisecond)
		w.WriteHeader(http.StatusAccepted)
	})

	rec := do(t, r, http.MethodGet, "/slow")
	require.Equal(t, http.StatusAccepted, rec.Code)
	out := buf.String()
	assert.Contains(t, out, "status=202")
	assert.Contains(t, out, "duration=250ms")
	assert.Contains(t, out, "path=/slow")

	do(t, r, http.MethodPost, "/12/place/cookie/1")
	do(t, r, http.MethodPost, "/12/place/cookie/9")

	body := do(t, r, http.MethodGet, "/metrics").Body.String()
	assert.Contains(t, body, `test_http_requests_total{code="202",route="/slow"} 1`)
	assert.Contains(t, body, `test_http_requests_total{code="400",route="/12/place/{team}/{column}"} 1`)
	assert.Contains(t, body, `test_placements_total{result="ok",team="cookie"} 1`)
}

func TestConcurrentRequests(t *testing.T) {
	r := newTestRouter(t)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				col := string(rune('1' + (g+i)%4))
				rec := do(t, r, http.MethodPost, "/12/place/cookie/"+col)
				assert.Contains(t, []int{http.StatusOK, http.StatusServiceUnavailable}, rec.Code)
				do(t, r, http.MethodGet, "/12/board")
			}
		}(g)
	}
	wg.Wait()

	body := do(t, r, http.MethodGet, "/12/board").Body.String()
	assert.True(t, strings.HasSuffix(body, "🍪 wins!\n"))
}
