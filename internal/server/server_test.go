package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	routes "github.com/oggyb/whatsapp-notifier/internal/router"
)

type stubHome struct{}

func (stubHome) Index(w http.ResponseWriter, _ *http.Request)  { w.WriteHeader(http.StatusOK) }
func (stubHome) Health(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

type stubNotifications struct{}

func (stubNotifications) CreateNotification(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusAccepted)
}
func (stubNotifications) GetSentNotifications(w http.ResponseWriter, _ *http.Request) {}
func (stubNotifications) GetSentAt(w http.ResponseWriter, _ *http.Request)            {}
func (stubNotifications) GetFailures(w http.ResponseWriter, _ *http.Request)          {}
func (stubNotifications) StartStopScheduler(w http.ResponseWriter, _ *http.Request)   {}
func (stubNotifications) SchedulerStatus(w http.ResponseWriter, _ *http.Request)      {}

func TestServer_RoutesAndLogging(t *testing.T) {
	var logs bytes.Buffer
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	srv := New(":0", routes.AppDeps{
		Home:         stubHome{},
		Notification: stubNotifications{},
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}, zerolog.New(&logs))
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notifications", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, logs.String(), `"status":202`)
	assert.Contains(t, logs.String(), `"path":"/notifications"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_total 1")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestRecoverer(t *testing.T) {
	srv := New(":0", routes.AppDeps{
		Home:         panicHome{},
		Notification: stubNotifications{},
	}, zerolog.Nop())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type panicHome struct{ stubHome }

func (panicHome) Index(http.ResponseWriter, *http.Request) { panic("boom") }
