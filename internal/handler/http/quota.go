package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cistech/hrms-backend-go/internal/domain/quota"
	"github.com/cistech/hrms-backend-go/internal/handler/http/middleware"
	"github.com/cistech/hrms-backend-go/internal/handler/http/response"
	quotaservice "github.com/cistech/hrms-backend-go/internal/service/quota"
	"github.com/go-chi/chi/v5"
)

type QuotaHandler interface {
	MyQuota(w http.ResponseWriter, r *http.Request)
	GetQuota(w http.ResponseWriter, r *http.Request)
	UpsertQuota(w http.ResponseWriter, r *http.Request)
	DeleteQuota(w http.ResponseWriter, r *http.Request)
}

type QuotaHandlerImpl struct {
	quotaService *quotaservice.Service
}

func NewQuotaHandler(quotaService *quotaservice.Service) QuotaHandler {
	return &QuotaHandlerImpl{quotaService: quotaService}
}

// yearParam reads the year query parameter, defaulting to the current year.
func yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return time.Now().Year(), nil
	}
	return strconv.Atoi(raw)
}

// MyQuota implements QuotaHandler.
func (h *QuotaHandlerImpl) MyQuota(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.ActorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, err := yearParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid year", nil)
		return
	}

	q, err := h.quotaService.Balance(r.Context(), actorID, year)
	if err != nil {
		slog.Error("MyQuota service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, quota.ToSnapshot(q))
}

// GetQuota implements QuotaHandler.
func (h *QuotaHandlerImpl) GetQuota(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	year, err := yearParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid year", nil)
		return
	}

	q, err := h.quotaService.Balance(r.Context(), userID, year)
	if err != nil {
		slog.Error("GetQuota service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, quota.ToSnapshot(q))
}

// UpsertQuota implements QuotaHandler.
func (h *QuotaHandlerImpl) UpsertQuota(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var upsertReq quota.UpsertQuotaRequest
	if err := json.NewDecoder(r.Body).Decode(&upsertReq); err != nil {
		slog.Error("UpsertQuota decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	upsertReq.UserID = userID

	if err := h.quotaService.Upsert(r.Context(), upsertReq); err != nil {
		slog.Error("UpsertQuota service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	slog.Info("quota upserted", "user_id", userID, "year", upsertReq.Year)
	response.SuccessWithMessage(w, "Quota saved", nil)
}

// DeleteQuota implements QuotaHandler.
func (h *QuotaHandlerImpl) DeleteQuota(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	year, err := yearParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid year", nil)
		return
	}

	if err := h.quotaService.Delete(r.Context(), userID, year); err != nil {
		slog.Error("DeleteQuota service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	slog.Info("quota deleted", "user_id", userID, "year", year)
	response.SuccessWithMessage(w, "Quota deleted", nil)
}
