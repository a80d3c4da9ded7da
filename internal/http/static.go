package httpx

import (
	"net/http"

	domainauth "github.com/hap-eb/ebill-reports/internal/domain/auth"
)

// PageGate binds a dashboard page prefix to the roles allowed to load it.
type PageGate struct {
	Prefix string
	Roles  domainauth.AllowList
}

// PageGates lists the role-gated dashboard sections. Everything else under the
// static root is public.
func PageGates() []PageGate {
	return []PageGate{
		{Prefix: "/admin/", Roles: domainauth.AllowList{domainauth.RoleAdmin}},
		{Prefix: "/msp/", Roles: domainauth.AllowList{domainauth.RoleMSP}},
		{Prefix: "/tl/", Roles: domainauth.AllowList{domainauth.RoleTeamLead}},
		{Prefix: "/master-admin/", Roles: domainauth.AllowList{domainauth.RoleMasterAdmin}},
	}
}

func registerStaticRoutes(mux *http.ServeMux, dir string) {
	files := http.FileServer(http.Dir(dir))
	mux.Handle("GET /", files)
	for _, g := range PageGates() {
		mux.Handle("GET "+g.Prefix, RequireRoles(g.Roles...)(files))
	}
}
