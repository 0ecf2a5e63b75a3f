package adaptor

import (
	"net/http"

	"pizza-service/internal/dto/request"
	"pizza-service/internal/usecase"
	"pizza-service/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	// an unreadable body is reported the same way as missing fields
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "name, email, and password are required")
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "register")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// Login handles PUT /api/auth
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// Logout handles DELETE /api/auth
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentity(r.Context())

	if err := h.service.Logout(r.Context(), identity); err != nil {
		handleServiceError(h.log, w, err, "logout")
		return
	}

	utils.ResponseMessage(w, "logout successful")
}
