package utils

import (
	"encoding/json"
	"net/http"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// ResponseJSON writes body as JSON with the given status code
func ResponseJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, data)
}

// returns 200 OK with {"message": ...}
func ResponseMessage(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusBadRequest, MessageResponse{Message: message})
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter) {
	ResponseJSON(w, http.StatusUnauthorized, MessageResponse{Message: "unauthorized"})
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusForbidden, MessageResponse{Message: message})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter) {
	ResponseJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error"})
}

// ResponseError renders an AppError, merging its details next to the message.
func ResponseError(w http.ResponseWriter, appErr *AppError) {
	if len(appErr.Details) == 0 {
		ResponseJSON(w, appErr.StatusCode(), MessageResponse{Message: appErr.Message})
		return
	}

	body := make(map[string]any, len(appErr.Details)+1)
	for k, v := range appErr.Details {
		body[k] = v
	}
	body["message"] = appErr.Message
	ResponseJSON(w, appErr.StatusCode(), body)
}
