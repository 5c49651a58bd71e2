package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cistech/hrms-backend-go/internal/domain/user"
	"github.com/cistech/hrms-backend-go/internal/handler/http/response"
	userservice "github.com/cistech/hrms-backend-go/internal/service/user"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListManagers(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService *userservice.Service
}

func NewUserHandler(userService *userservice.Service) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		slog.Error("List users service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u))
	}
	response.Success(w, out)
}

// ListManagers implements UserHandler.
func (h *UserHandlerImpl) ListManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := h.userService.ListManagers(r.Context())
	if err != nil {
		slog.Error("ListManagers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]user.UserResponse, 0, len(managers))
	for _, u := range managers {
		out = append(out, user.ToResponse(u))
	}
	response.Success(w, out)
}

// Create implements UserHandler.
func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.userService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("user created", "user_id", created.ID, "role", created.Role)
	response.Created(w, "User created", user.ToResponse(created))
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	if err := h.userService.Update(r.Context(), updateReq); err != nil {
		slog.Error("Update user service error", "error", err, "user_id", updateReq.ID)
		response.HandleError(w, err)
		return
	}

	slog.Info("user updated", "user_id", updateReq.ID)
	response.SuccessWithMessage(w, "User updated", nil)
}

// Delete implements UserHandler.
func (h *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete user service error", "error", err, "user_id", id)
		response.HandleError(w, err)
		return
	}

	slog.Info("user deleted", "user_id", id)
	response.SuccessWithMessage(w, "User deleted", nil)
}
