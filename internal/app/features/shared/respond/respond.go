// internal/app/features/shared/respond/respond.go
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/freighthub/internal/apperror"
)

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Error maps err through the apperror taxonomy and writes the envelope.
// Internal causes are logged, never echoed.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("request failed", zap.Error(err))
	}
	var body errorBody
	body.Error.Code = apperror.Code(err)
	body.Error.Message = apperror.Message(err)
	JSON(w, status, body)
}
