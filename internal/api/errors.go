package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/constants"
	"wecelebrate/console/internal/logging"
	"wecelebrate/console/internal/services"
)

const maxBodyBytes = 1 << 20

// handleServiceError maps service errors to HTTP responses. Failed
// validation results are returned as the response data.
func handleServiceError(w http.ResponseWriter, r *http.Request, initTime time.Time, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		statusCode := constants.HTTPStatusForCode(svcErr.Code)

		message := svcErr.Message
		if statusCode >= http.StatusInternalServerError {
			logging.Error("Request failed", "endpoint", r.URL.Path, "code", svcErr.Code, "error", err)
			message = constants.GetErrorMessage(svcErr.Code)
		}

		var data any
		if svcErr.Result != nil {
			data = svcErr.Result
		}
		common.RespondErrorWithData(w, initTime, nil, message, data, statusCode)
		return
	}

	logging.Error("Unexpected error", "endpoint", r.URL.Path, "error", err)
	common.RespondError(w, initTime, nil, "An unexpected error occurred", http.StatusInternalServerError)
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("Invalid request body: %w", err)
	}
	return nil
}
