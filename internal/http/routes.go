// Package httpx provides HTTP handlers and utilities for the billing report API and dashboard.
package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/hap-eb/ebill-reports/internal/domain/auth"
	"github.com/hap-eb/ebill-reports/internal/service"
)

// Roles admitted on the gated API routes.
var (
	BillWriteRoles     = domainauth.AllowList{domainauth.RoleAdmin, domainauth.RoleMasterAdmin}
	ReportAdminRoles   = domainauth.AllowList{domainauth.RoleAdmin, domainauth.RoleMasterAdmin}
	ReportTriggerRoles = domainauth.AllowList{domainauth.RoleAdmin, domainauth.RoleMasterAdmin, domainauth.RoleMSP}
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Bills   *service.BillService
	Reports *service.ReportService

	// Metrics is mounted at MetricsPath when set.
	Metrics     http.Handler
	MetricsPath string

	// StaticDir serves a built dashboard with role-gated page prefixes. Optional.
	StaticDir  string
	CORSOrigin string
	Logger     *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	health := healthHandler(services)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	if services.Metrics != nil {
		path := services.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, services.Metrics)
	}

	if services.Bills != nil {
		registerBillRoutes(mux, &BillHandlers{Svc: services.Bills})
	}
	if services.Reports != nil {
		registerReportRoutes(mux, &ReportHandlers{Svc: services.Reports}, services.CORSOrigin)
	}
	if services.StaticDir != "" {
		registerStaticRoutes(mux, services.StaticDir)
	}

	return Recover(logger)(Logging(logger)(mux))
}

type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
}

// registerCRUD mounts the collection routes; Middleware guards the writes only.
func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("GET "+cfg.Base, cfg.List)
	mux.Handle("GET "+cfg.Base+"/{id}", cfg.GetByID)
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Delete))
}

func registerBillRoutes(mux *http.ServeMux, h *BillHandlers) {
	registerCRUD(mux, crudRoutes{
		Base:       "/api/bills",
		Create:     h.Create,
		List:       h.List,
		GetByID:    h.GetByID,
		Update:     h.Update,
		Delete:     h.Delete,
		Middleware: RequireRoles(BillWriteRoles...),
	})
	mux.HandleFunc("GET /api/bills/trend", h.Trend)
}

func registerReportRoutes(mux *http.ServeMux, h *ReportHandlers, corsOrigin string) {
	cors := CORS(corsOrigin)
	trigger := RequireRoles(ReportTriggerRoles...)(http.HandlerFunc(h.Run))
	// Preflight carries no role claim, so CORS sits outside the gate.
	mux.Handle("OPTIONS /api/reports/run", cors(trigger))
	mux.Handle("POST /api/reports/run", cors(trigger))

	mux.HandleFunc("GET /api/reports", h.List)
	mux.HandleFunc("GET /api/reports/runs", h.Runs)
	mux.Handle("DELETE /api/reports/{key...}", RequireRoles(ReportAdminRoles...)(http.HandlerFunc(h.Delete)))
}

// RouteAccess describes one gated route for operator tooling.
type RouteAccess struct {
	Method  string
	Pattern string
	Roles   domainauth.AllowList
}

// AccessTable lists every role-gated route and page prefix.
func AccessTable() []RouteAccess {
	table := []RouteAccess{
		{Method: http.MethodPost, Pattern: "/api/bills", Roles: BillWriteRoles},
		{Method: http.MethodPut, Pattern: "/api/bills/{id}", Roles: BillWriteRoles},
		{Method: http.MethodDelete, Pattern: "/api/bills/{id}", Roles: BillWriteRoles},
		{Method: http.MethodPost, Pattern: "/api/reports/run", Roles: ReportTriggerRoles},
		{Method: http.MethodDelete, Pattern: "/api/reports/{key...}", Roles: ReportAdminRoles},
	}
	for _, g := range PageGates() {
		table = append(table, RouteAccess{Method: http.MethodGet, Pattern: g.Prefix, Roles: g.Roles})
	}
	return table
}
