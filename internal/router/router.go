package routes

import (
	"net/http"

	swaggerHandler "github.com/swaggo/http-swagger"

	_ "github.com/oggyb/whatsapp-notifier/internal/docs" // swagger docs
	"github.com/oggyb/whatsapp-notifier/internal/response"
)

type AppDeps struct {
	Home         HomeHandler
	Notification NotificationHandler
	// Metrics serves the Prometheus exposition format; nil disables /metrics.
	Metrics http.Handler
}

type HomeHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type NotificationHandler interface {
	CreateNotification(w http.ResponseWriter, r *http.Request)
	GetSentNotifications(w http.ResponseWriter, r *http.Request)
	GetSentAt(w http.ResponseWriter, r *http.Request)
	GetFailures(w http.ResponseWriter, r *http.Request)
	StartStopScheduler(w http.ResponseWriter, r *http.Request)
	SchedulerStatus(w http.ResponseWriter, r *http.Request)
}

func Register(mux *http.ServeMux, d AppDeps) {
	mux.HandleFunc("GET /{$}", d.Home.Index)
	mux.HandleFunc("GET /health", d.Home.Health)

	mux.HandleFunc("POST /notifications", d.Notification.CreateNotification)
	mux.HandleFunc("GET /notifications/sent", d.Notification.GetSentNotifications)
	mux.HandleFunc("GET /notifications/sent/{id}", d.Notification.GetSentAt)
	mux.HandleFunc("GET /notifications/failures", d.Notification.GetFailures)

	mux.HandleFunc("POST /scheduler", d.Notification.StartStopScheduler)
	mux.HandleFunc("GET /scheduler", d.Notification.SchedulerStatus)

	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	//Swagger
	mux.HandleFunc("GET /swagger/", swaggerHandler.WrapHandler)

	// Fallback handler for undefined routes (404)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusNotFound, "route not found")
	}))
}
