package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"skybook/internal/auth/middleware"
	"skybook/internal/auth/service"
	httputil "skybook/pkg/http"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

const (
	registeredMessage = "User registered successfully"
	adminContent      = "Admin content"
)

type RegisterResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type AuthHandler struct {
	service service.AuthService
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Register", err)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteCreated(w, RegisterResponse{Message: registeredMessage, User: user}); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Login", err)
		return
	}

	token, user, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, LoginResponse{Token: token, User: user}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) Admin(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteText(w, http.StatusOK, adminContent); err != nil {
		h.log.Error("failed to write text response", "handler", "Admin", "operation", "WriteText", "error", err)
	}
}

func (h *AuthHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	requireAuth := middleware.RequireAuth(h.service, h.log)
	requireAdmin := middleware.RequireRole(h.service, model.RoleAdmin, h.log)

	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	router.GET("/api/protected/admin", requireAuth(requireAdmin(h.Admin)))
}
