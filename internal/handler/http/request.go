package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/cistech/hrms-backend-go/internal/domain/request"
	"github.com/cistech/hrms-backend-go/internal/domain/user"
	"github.com/cistech/hrms-backend-go/internal/handler/http/middleware"
	"github.com/cistech/hrms-backend-go/internal/handler/http/response"
	"github.com/cistech/hrms-backend-go/internal/service/file"
	"github.com/cistech/hrms-backend-go/internal/service/workflow"
	"github.com/go-chi/chi/v5"
)

const maxTimesheetSize = 10 << 20 // 10 MiB

type RequestHandler interface {
	SubmitLeave(w http.ResponseWriter, r *http.Request)
	SubmitChangeOff(w http.ResponseWriter, r *http.Request)
	DownloadAttachment(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	PendingForManager(w http.ResponseWriter, r *http.Request)
	TeamRequests(w http.ResponseWriter, r *http.Request)
	PendingHR(w http.ResponseWriter, r *http.Request)
	ManagerDecision(w http.ResponseWriter, r *http.Request)
	HRDecision(w http.ResponseWriter, r *http.Request)
}

type RequestHandlerImpl struct {
	workflowService *workflow.Service
	fileService     file.FileService
}

func NewRequestHandler(workflowService *workflow.Service, fileService file.FileService) RequestHandler {
	return &RequestHandlerImpl{
		workflowService: workflowService,
		fileService:     fileService,
	}
}

// SubmitLeave implements RequestHandler.
func (h *RequestHandlerImpl) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.ActorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var submitReq request.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("SubmitLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.workflowService.SubmitLeave(r.Context(), actorID, submitReq)
	if err != nil {
		slog.Error("SubmitLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("leave request submitted", "request_id", created.ID, "user_id", actorID, "days", created.Days)
	response.Created(w, "Leave request submitted", request.ToResponse(created))
}

// SubmitChangeOff implements RequestHandler. The body is multipart: form
// fields plus the activities JSON array and the timesheet file.
func (h *RequestHandlerImpl) SubmitChangeOff(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.ActorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxTimesheetSize); err != nil {
		slog.Error("SubmitChangeOff multipart error", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	submitReq := request.SubmitChangeOffRequest{
		DepartureDate: r.FormValue("departure_date"),
		ReturnDate:    r.FormValue("return_date"),
		Location:      r.FormValue("location"),
		PIC:           r.FormValue("pic"),
	}
	if v := r.FormValue("job_execution"); v != "" {
		submitReq.JobExecution = &v
	}

	if activitiesJSON := r.FormValue("activities"); activitiesJSON != "" {
		if err := json.Unmarshal([]byte(activitiesJSON), &submitReq.Activities); err != nil {
			slog.Error("SubmitChangeOff activities decode error", "error", err)
			response.BadRequest(w, "Invalid activities format", nil)
			return
		}
	}

	if f, header, err := r.FormFile("attachment"); err == nil {
		defer f.Close()
		path, err := h.fileService.UploadTimesheet(r.Context(), actorID, f, header.Filename)
		if err != nil {
			slog.Error("SubmitChangeOff upload error", "error", err)
			response.BadRequest(w, err.Error(), nil)
			return
		}
		submitReq.AttachmentPath = path
	}

	created, err := h.workflowService.SubmitChangeOff(r.Context(), actorID, submitReq)
	if err != nil {
		slog.Error("SubmitChangeOff service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("change-off request submitted", "request_id", created.ID, "user_id", actorID, "hours", created.Hours)
	response.Created(w, "Change-off request submitted", request.ToResponse(created))
}

// DownloadAttachment implements RequestHandler. The attachment is served
// to the request owner and to managers and HR admins reviewing it.
func (h *RequestHandlerImpl) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.ActorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	role, err := middleware.ActorRole(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "id")

	req, err := h.workflowService.GetRequest(r.Context(), requestID)
	if err != nil {
		slog.Error("DownloadAttachment service error", "error", err, "request_id", requestID)
		response.HandleError(w, err)
		return
	}

	if req.UserID != actorID && role != user.RoleManager && role != user.RoleHRAdmin {
		response.Forbidden(w, "You do not have access to this attachment")
		return
	}

	if req.AttachmentPath == nil || *req.AttachmentPath == "" {
		response.NotFound(w, "Request has no attachment")
		return
	}

	f, err := h.fileService.DownloadAttachment(r.Context(), *req.AttachmentPath)
	if err != nil {
		slog.Error("DownloadAttachment read error", "error", err, "request_id", requestID)
		response.NotFound(w, "Attachment not found")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(*req.AttachmentPath)))
	if _, err := io.Copy(w, f); err != nil {
		slog.Error("DownloadAttachment stream error", "error", err, "request_id", requestID)
	}
}

// MyRequests implements RequestHandler.
func (h *RequestHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.ActorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.workflowService.MyRequests(r.Context(), actorID)
	if err != nil {
		slog.Error("MyRequests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, request.ToResponses(requests))
}

// PendingForManager implements RequestHandler.
func (h *RequestHandlerImpl) PendingForManager(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.ActorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.workflowService.PendingForManager(r.Context(), actorID)
	if err != nil {
		slog.Error("PendingForManager service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, request.ToResponses(requests))
}

// TeamRequests implements RequestHandler.
func (h *RequestHandlerImpl) TeamRequests(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.ActorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.workflowService.TeamRequests(r.Context(), actorID)
	if err != nil {
		slog.Error("TeamRequests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, request.ToResponses(requests))
}

// PendingHR implements RequestHandler.
func (h *RequestHandlerImpl) PendingHR(w http.ResponseWriter, r *http.Request) {
	requests, err := h.workflowService.PendingHR(r.Context())
	if err != nil {
		slog.Error("PendingHR service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, request.ToResponses(requests))
}

// ManagerDecision implements RequestHandler.
func (h *RequestHandlerImpl) ManagerDecision(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.ActorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "id")

	var decisionReq request.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&decisionReq); err != nil {
		slog.Error("ManagerDecision decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	decided, err := h.workflowService.DecideManager(r.Context(), actorID, requestID, decisionReq.Approve)
	if err != nil {
		slog.Error("ManagerDecision service error", "error", err, "request_id", requestID)
		response.HandleError(w, err)
		return
	}

	slog.Info("manager decision recorded", "request_id", requestID, "decider", actorID, "status", decided.Status)
	response.SuccessWithMessage(w, "Decision recorded", request.ToResponse(decided))
}

// HRDecision implements RequestHandler.
func (h *RequestHandlerImpl) HRDecision(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.ActorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "id")

	var decisionReq request.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&decisionReq); err != nil {
		slog.Error("HRDecision decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	decided, err := h.workflowService.DecideHR(r.Context(), actorID, requestID, decisionReq.Approve)
	if err != nil {
		slog.Error("HRDecision service error", "error", err, "request_id", requestID)
		response.HandleError(w, err)
		return
	}

	slog.Info("HR decision recorded", "request_id", requestID, "decider", actorID, "status", decided.Status)
	response.SuccessWithMessage(w, "Decision recorded", request.ToResponse(decided))
}
