package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/oggyb/whatsapp-notifier/internal/cache"
	"github.com/oggyb/whatsapp-notifier/internal/domain/delivery"
	"github.com/oggyb/whatsapp-notifier/internal/request"
	"github.com/oggyb/whatsapp-notifier/internal/response"
	"github.com/oggyb/whatsapp-notifier/internal/scheduler"
	"github.com/oggyb/whatsapp-notifier/internal/service"
)

// NotificationHandler wires HTTP endpoints to the delivery service and the
// background scheduler.
type NotificationHandler struct {
	svc    service.DeliveryService
	sch    scheduler.Controller
	logger zerolog.Logger
}

func NewNotificationHandler(svc service.DeliveryService, sch scheduler.Controller, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		svc:    svc,
		sch:    sch,
		logger: logger,
	}
}

// CreateNotification godoc
// @Summary     Queue or send a WhatsApp notification
// @Description Stores the notification in the outbox. With "sync": true it is sent immediately.
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       request body request.NotificationRequest true "Notification"
// @Success     201 {object} response.DeliveryResponse
// @Success     202 {object} response.DeliveryResponse
// @Failure     400 {object} response.JSONResponse
// @Failure     502 {object} response.JSONResponse
// @Router      /notifications [post]
func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req request.NotificationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !req.Sync {
		d, err := h.svc.Enqueue(r.Context(), req.To, req.Content, req.Token)
		if err != nil {
			h.respondServiceError(w, err)
			return
		}
		response.RespondJSON(w, http.StatusAccepted, response.FromDomainDelivery(d))
		return
	}

	d, err := h.svc.SendNow(r.Context(), req.To, req.Content, req.Token)
	if err != nil {
		if d != nil {
			h.logger.Warn().Err(err).Str("delivery_id", d.ID.String()).Msg("synchronous send failed")
			response.RespondError(w, http.StatusBadGateway, err.Error())
			return
		}
		h.respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, response.FromDomainDelivery(d))
}

// GetSentNotifications godoc
// @Summary     List sent notifications
// @Description Returns a paginated list of successfully sent notifications.
// @Tags        notifications
// @Produce     json
// @Param       page  query int false "Page number"         default(1)
// @Param       limit query int false "Page size (max 100)" default(20)
// @Success     200 {object} response.SentDeliveriesResponse
// @Failure     500 {object} response.JSONResponse
// @Router      /notifications/sent [get]
func (h *NotificationHandler) GetSentNotifications(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	items, total, err := h.svc.GetSent(r.Context(), page, limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.SentDeliveriesPayload{
		Items: response.FromDomainDeliveries(items),
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetSentAt godoc
// @Summary     Look up when a message was sent
// @Description Resolves a provider message ID through the sent-message cache.
// @Tags        notifications
// @Produce     json
// @Param       id path string true "Provider message ID"
// @Success     200 {object} response.SentAtResponse
// @Failure     404 {object} response.JSONResponse
// @Router      /notifications/sent/{id} [get]
func (h *NotificationHandler) GetSentAt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	at, err := h.svc.SentAt(r.Context(), id)
	if errors.Is(err, cache.ErrNotFound) {
		response.RespondError(w, http.StatusNotFound, "message not found")
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.SentAtPayload{
		ProviderMessageID: id,
		SentAt:            at,
	})
}

// GetFailures godoc
// @Summary     List failed sends
// @Description Returns recorded failure events, newest first.
// @Tags        notifications
// @Produce     json
// @Param       page  query int false "Page number"         default(1)
// @Param       limit query int false "Page size (max 100)" default(20)
// @Success     200 {object} response.FailuresResponse
// @Failure     500 {object} response.JSONResponse
// @Router      /notifications/failures [get]
func (h *NotificationHandler) GetFailures(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	items, total, err := h.svc.GetFailures(r.Context(), page, limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.FailuresPayload{
		Items: response.FromFailureRecords(items),
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// StartStopScheduler godoc
// @Summary     Control scheduler
// @Description Starts or stops the background scheduler based on the given action.
// @Tags        scheduler
// @Accept      json
// @Produce     json
// @Param       request body request.SchedulerRequest true "Scheduler action (start|stop)"
// @Success     200 {object} response.SchedulerControlResponse
// @Failure     400 {object} response.JSONResponse
// @Router      /scheduler [post]
func (h *NotificationHandler) StartStopScheduler(w http.ResponseWriter, r *http.Request) {
	var req request.SchedulerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var (
		err error
		msg string
	)
	switch req.Action {
	case "start":
		err, msg = h.sch.Start(), "scheduler started"
	case "stop":
		err, msg = h.sch.Stop(), "scheduler stopped"
	default:
		response.RespondError(w, http.StatusBadRequest, "action must be 'start' or 'stop'")
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.SchedulerControlPayload{
		Message: msg,
	})
}

// SchedulerStatus godoc
// @Summary     Scheduler status
// @Tags        scheduler
// @Produce     json
// @Success     200 {object} response.SchedulerStatusResponse
// @Router      /scheduler [get]
func (h *NotificationHandler) SchedulerStatus(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.sch.Status())
}

func (h *NotificationHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, delivery.ErrEmptyRecipient),
		errors.Is(err, delivery.ErrEmptyContent),
		errors.Is(err, delivery.ErrContentTooLong):
		response.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("notification request failed")
		response.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}

// pagination reads page and limit, defaulting to 1 and 20 (limit max 100).
func pagination(r *http.Request) (int, int) {
	page := 1
	limit := 20

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}
