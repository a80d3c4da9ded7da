package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/hap-eb/ebill-reports/internal/errors"
)

// maxJSONBody caps bill payloads; a bill row is a few hundred bytes.
const maxJSONBody = 64 << 10

var errTrailingJSON = errors.New("request body must contain a single JSON object")

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DecodeJSON strictly decodes the request body into dst. On failure it
// writes a 400 (or 413 for oversized bodies) and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil && dec.Decode(&struct{}{}) != io.EOF {
		err = errTrailingJSON
	}
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		WriteError(w, ErrorParams{Code: http.StatusRequestEntityTooLarge, ErrCode: "body_too_large", Err: err})
		return false
	}
	WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
	return false
}

// WriteJSON encodes v before touching the response so an encoding failure
// can still become a clean 500.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w) // client went away
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes an ErrorBody.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, ErrorBody{Error: p.ErrCode, Message: p.Err.Error()})
}

var appErrorStatus = map[apperrors.ErrorCode]struct { //nolint:gochecknoglobals // read-only
	status int
	code   string
}{
	apperrors.ErrCodeValidation:  {http.StatusBadRequest, "validation_failed"},
	apperrors.ErrCodeNotFound:    {http.StatusNotFound, "not_found"},
	apperrors.ErrCodeConflict:    {http.StatusConflict, "conflict"},
	apperrors.ErrCodeUnavailable: {http.StatusServiceUnavailable, "unavailable"},
	apperrors.ErrCodeTimeout:     {http.StatusGatewayTimeout, "timeout"},
}

// WriteAppError maps an AppError code onto an HTTP status. Uncoded errors
// are 400 when they read like validation failures, else 500 with fallback.
func WriteAppError(w http.ResponseWriter, err error, fallback string) {
	if m, ok := appErrorStatus[apperrors.GetCode(err)]; ok {
		WriteError(w, ErrorParams{Code: m.status, ErrCode: m.code, Err: err})
		return
	}
	if isValidationError(err) {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}
	WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: fallback, Err: err})
}
