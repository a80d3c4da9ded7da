package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	domainauth "github.com/hap-eb/ebill-reports/internal/domain/auth"
)

// RoleHeader and RoleCookie each carry a claimed dashboard role.
const (
	RoleHeader = "x-user-role"
	RoleCookie = "role"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimedRoles returns the known roles claimed by the x-user-role header
// and the role cookie, header first. Claims are not verified and unknown
// values are skipped.
func ClaimedRoles(r *http.Request) []domainauth.Role {
	var roles []domainauth.Role
	if role, ok := domainauth.ParseRole(r.Header.Get(RoleHeader)); ok {
		roles = append(roles, role)
	}
	if c, err := r.Cookie(RoleCookie); err == nil {
		if role, ok := domainauth.ParseRole(c.Value); ok {
			roles = append(roles, role)
		}
	}
	return roles
}

// RequireRoles returns a middleware that admits a request when either the
// header or the cookie claims a listed role. Denied requests get a 403 with
// a plain-text message naming the allowed audience.
func RequireRoles(roles ...domainauth.Role) func(http.Handler) http.Handler {
	allow := domainauth.AllowList(roles)
	denial := allow.DenialMessage()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.ContainsFunc(ClaimedRoles(r), allow.Allows) {
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusForbidden)
				_, _ = io.WriteString(w, denial)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORS sets the trigger endpoint's cross-origin headers and answers preflight requests.
func CORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Headers", "Content-Type, "+RoleHeader)
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
