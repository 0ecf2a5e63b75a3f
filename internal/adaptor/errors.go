package adaptor

import (
	"encoding/json"
	"net/http"

	"pizza-service/pkg/utils"

	"go.uber.org/zap"
)

const msgInvalidBody = "invalid request body"

// handleServiceError writes the response for a failed service call. Client
// errors are logged at Warn, everything else at Error with the cause attached.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	appErr := utils.AsAppError(err)

	switch appErr.Kind {
	case utils.KindValidation, utils.KindAuth, utils.KindForbidden, utils.KindNotFound:
		log.Warn(operation+" failed",
			zap.Int("status", appErr.StatusCode()),
			zap.String("message", appErr.Message))
	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
	}

	utils.ResponseError(w, appErr)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
