// Package auth holds the role enumeration used by the role gate.
// Roles are claimed by the caller (header or cookie) and are not verified
// against any identity provider.
package auth

import (
	"fmt"
	"strings"
)

// Role represents a claimed dashboard role.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleMSP         Role = "msp"
	RoleTeamLead    Role = "tl"
	RoleMasterAdmin Role = "master-admin"
)

// AllRoles lists every known role in display order.
var AllRoles = []Role{RoleAdmin, RoleMSP, RoleTeamLead, RoleMasterAdmin}

var rolePlurals = map[Role]string{
	RoleAdmin:       "Admins",
	RoleMSP:         "MSPs",
	RoleTeamLead:    "Team Leads",
	RoleMasterAdmin: "Master Admins",
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := rolePlurals[r]
	return ok
}

// Plural returns the audience name used in denial messages ("Admins").
func (r Role) Plural() string {
	if p, ok := rolePlurals[r]; ok {
		return p
	}
	return string(r)
}

// ParseRole matches a claimed role value exactly, so "ADMIN" and " admin"
// are unknown. Unknown values return false.
func ParseRole(v string) (Role, bool) {
	r := Role(v)
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// AllowList is the set of roles permitted on one route.
type AllowList []Role

// Allows reports whether r is a member of the list. Matching is exact.
func (a AllowList) Allows(r Role) bool {
	for _, allowed := range a {
		if allowed == r {
			return true
		}
	}
	return false
}

// DenialMessage is the plain-text body returned when a role is rejected.
func (a AllowList) DenialMessage() string {
	if len(a) == 1 {
		return fmt.Sprintf("Access denied: %s only.", a[0].Plural())
	}
	names := make([]string, len(a))
	for i, r := range a {
		names[i] = string(r)
	}
	return fmt.Sprintf("Access denied: only [%s] allowed.", strings.Join(names, ", "))
}
