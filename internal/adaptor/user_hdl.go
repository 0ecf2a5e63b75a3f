package adaptor

import (
	"net/http"

	"pizza-service/internal/dto/request"
	"pizza-service/internal/usecase"
	"pizza-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetMe handles GET /api/user/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentity(r.Context())

	user, err := h.service.GetMe(r.Context(), identity)
	if err != nil {
		handleServiceError(h.log, w, err, "get me")
		return
	}

	utils.ResponseSuccess(w, user)
}

// UpdateUser handles PUT /api/user/{userId}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.ParseID(chi.URLParam(r, "userId"))
	if !ok {
		utils.ResponseBadRequest(w, "invalid user id")
		return
	}

	var req request.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody)
		return
	}

	identity, _ := utils.GetIdentity(r.Context())
	resp, err := h.service.UpdateUser(r.Context(), identity, userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update user")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// GrantRole handles POST /api/user/{userId}/role (admin only)
func (h *UserHandler) GrantRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.ParseID(chi.URLParam(r, "userId"))
	if !ok {
		utils.ResponseBadRequest(w, "invalid user id")
		return
	}

	var req request.GrantRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody)
		return
	}

	identity, _ := utils.GetIdentity(r.Context())
	user, err := h.service.GrantRole(r.Context(), identity, userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "grant role")
		return
	}

	utils.ResponseSuccess(w, user)
}
