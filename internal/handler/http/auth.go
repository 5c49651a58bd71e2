package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cistech/hrms-backend-go/internal/domain/user"
	"github.com/cistech/hrms-backend-go/internal/handler/http/response"
	"github.com/cistech/hrms-backend-go/internal/pkg/jwt"
	userservice "github.com/cistech/hrms-backend-go/internal/service/user"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	userService *userservice.Service
}

func NewAuthHandler(jwtService jwt.Service, userService *userservice.Service) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		userService: userService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq user.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	u, err := a.userService.Authenticate(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		slog.Error("Login token error", "error", err)
		response.InternalServerError(w, "Failed to generate token")
		return
	}

	refreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		slog.Error("Login refresh token error", "error", err)
		response.InternalServerError(w, "Failed to generate token")
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(refreshToken, refreshExpiresAt))

	slog.Info("user logged in", "user_id", u.ID, "role", u.Role)
	response.Success(w, map[string]interface{}{
		"access_token": accessToken,
		"expires_at":   expiresAt,
		"user":         user.ToResponse(u),
	})
}

// RefreshToken implements AuthHandler. The refresh token is read from
// the cookie set at login, falling back to the request body for clients
// that cannot carry cookies.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshToken string

	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		refreshToken = cookie.Value
	} else {
		var refreshReq user.RefreshTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&refreshReq); err != nil {
			slog.Error("RefreshToken decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		if err := refreshReq.Validate(); err != nil {
			response.HandleError(w, err)
			return
		}
		refreshToken = refreshReq.RefreshToken
	}

	userID, err := a.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		slog.Error("RefreshToken validation error", "error", err)
		response.HandleError(w, user.ErrInvalidToken)
		return
	}

	u, err := a.userService.Get(r.Context(), userID)
	if err != nil {
		slog.Error("RefreshToken user lookup error", "error", err)
		response.HandleError(w, user.ErrInvalidToken)
		return
	}

	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		slog.Error("RefreshToken token error", "error", err)
		response.InternalServerError(w, "Failed to generate token")
		return
	}

	newRefreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		slog.Error("RefreshToken refresh token error", "error", err)
		response.InternalServerError(w, "Failed to generate token")
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(newRefreshToken, refreshExpiresAt))

	response.Success(w, map[string]interface{}{
		"access_token": accessToken,
		"expires_at":   expiresAt,
	})
}
