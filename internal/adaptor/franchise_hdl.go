package adaptor

import (
	"net/http"

	"pizza-service/internal/dto/request"
	"pizza-service/internal/usecase"
	"pizza-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FranchiseHandler struct {
	service usecase.FranchiseService
	log     *zap.Logger
}

func NewFranchiseHandler(service usecase.FranchiseService, log *zap.Logger) *FranchiseHandler {
	return &FranchiseHandler{
		service: service,
		log:     log.With(zap.String("handler", "franchise")),
	}
}

// ListFranchises handles GET /api/franchise?page=&limit=&name=
func (h *FranchiseHandler) ListFranchises(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.FranchiseListRequest{
		Page:  utils.ParseInt(query.Get("page"), 0),
		Limit: utils.ParseInt(query.Get("limit"), 10),
		Name:  query.Get("name"),
	}

	identity, _ := utils.GetIdentity(r.Context())
	resp, err := h.service.ListFranchises(r.Context(), identity, req)
	if err != nil {
		handleServiceError(h.log, w, err, "list franchises")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// ListUserFranchises handles GET /api/franchise/{userId}
func (h *FranchiseHandler) ListUserFranchises(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.ParseID(chi.URLParam(r, "userId"))
	if !ok {
		utils.ResponseBadRequest(w, "invalid user id")
		return
	}

	identity, _ := utils.GetIdentity(r.Context())
	franchises, err := h.service.ListUserFranchises(r.Context(), identity, userID)
	if err != nil {
		handleServiceError(h.log, w, err, "list user franchises")
		return
	}

	utils.ResponseSuccess(w, franchises)
}

// CreateFranchise handles POST /api/franchise
func (h *FranchiseHandler) CreateFranchise(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFranchiseRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody)
		return
	}

	identity, _ := utils.GetIdentity(r.Context())
	franchise, err := h.service.CreateFranchise(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create franchise")
		return
	}

	utils.ResponseSuccess(w, franchise)
}

// DeleteFranchise handles DELETE /api/franchise/{franchiseId}
func (h *FranchiseHandler) DeleteFranchise(w http.ResponseWriter, r *http.Request) {
	franchiseID, ok := utils.ParseID(chi.URLParam(r, "franchiseId"))
	if !ok {
		utils.ResponseBadRequest(w, "invalid franchise id")
		return
	}

	identity, _ := utils.GetIdentity(r.Context())
	if err := h.service.DeleteFranchise(r.Context(), identity, franchiseID); err != nil {
		handleServiceError(h.log, w, err, "delete franchise")
		return
	}

	utils.ResponseMessage(w, "franchise deleted")
}

// CreateStore handles POST /api/franchise/{franchiseId}/store
func (h *FranchiseHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	franchiseID, ok := utils.ParseID(chi.URLParam(r, "franchiseId"))
	if !ok {
		utils.ResponseBadRequest(w, "invalid franchise id")
		return
	}

	var req request.CreateStoreRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody)
		return
	}

	identity, _ := utils.GetIdentity(r.Context())
	store, err := h.service.CreateStore(r.Context(), identity, franchiseID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create store")
		return
	}

	utils.ResponseSuccess(w, store)
}

// DeleteStore handles DELETE /api/franchise/{franchiseId}/store/{storeId}
func (h *FranchiseHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	franchiseID, ok := utils.ParseID(chi.URLParam(r, "franchiseId"))
	if !ok {
		utils.ResponseBadRequest(w, "invalid franchise id")
		return
	}
	storeID, ok := utils.ParseID(chi.URLParam(r, "storeId"))
	if !ok {
		utils.ResponseBadRequest(w, "invalid store id")
		return
	}

	identity, _ := utils.GetIdentity(r.Context())
	if err := h.service.DeleteStore(r.Context(), identity, franchiseID, storeID); err != nil {
		handleServiceError(h.log, w, err, "delete store")
		return
	}

	utils.ResponseMessage(w, "store deleted")
}
