package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	commonerrors "studyabroad-workers/internal/common/errors"
)

const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("PROFILE_VALIDATION_FAILED")

func decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", errMalformedBody, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := commonerrors.FromError(err)
	status := statusFor(stdErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", map[string]interface{}{
			"path":  r.URL.Path,
			"code":  string(stdErr.Code),
			"error": err.Error(),
		})
	}
	writeJSON(w, status, stdErr)
}

func statusFor(code commonerrors.ErrorCode) int {
	switch code {
	case commonerrors.ErrCodeProfileValidationFailed,
		commonerrors.ErrCodeInvalidTaskCategory,
		commonerrors.ErrCodeUnknownAction:
		return http.StatusBadRequest
	case commonerrors.ErrCodeProfileNotFound,
		commonerrors.ErrCodeUniversityNotFound,
		commonerrors.ErrCodeTodoNotFound:
		return http.StatusNotFound
	case commonerrors.ErrCodeNotShortlisted,
		commonerrors.ErrCodeAlreadyLocked:
		return http.StatusConflict
	case commonerrors.ErrCodeCatalogUnavailable,
		commonerrors.ErrCodeDatabaseConnectionFailed:
		return http.StatusServiceUnavailable
	case commonerrors.ErrCodeCounsellorTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
