package httpx

import (
	"net/http"
	"strconv"
	"strings"
)

// Fragments of the bill validator messages. Errors that reach a handler
// without an AppError code still map to 400 when they carry one.
var validationErrorPatterns = []string{ //nolint:gochecknoglobals // read-only
	"is required",
	"cannot be empty",
	"cannot exceed",
	"at least one field must be updated",
	"must be between",
	"must be >= 0",
	"must be an English month name",
	"must be YYYY-MM-DD",
}

// queryInt reads key as an int. Missing or malformed values yield def.
func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil {
		return def
	}
	return n
}

// pageParams reads limit and offset. limit is clamped into [1, maxLimit]
// and offset is never negative.
func pageParams(r *http.Request, defLimit, maxLimit int) (limit, offset int) {
	limit = min(max(queryInt(r, "limit", defLimit), 1), max(maxLimit, 1))
	offset = max(queryInt(r, "offset", 0), 0)
	return limit, offset
}

// optionalQuery returns a trimmed query value, or nil when absent.
func optionalQuery(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}

func isValidationError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, p := range validationErrorPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
