package authz

import (
	"context"
	"errors"
	"strings"

	"advisory/internal/domain/programmer"
)

// Role is the effective access level of a caller.
type Role string

const (
	RoleAnonymous  Role = ""
	RoleAdmin      Role = "admin"
	RoleProgrammer Role = "programmer"
	RoleStudent    Role = "student"
)

// Page routes gated by the policy.
const (
	RouteRoot       = "/"
	RouteLogin      = "/login"
	RouteHome       = "/home"
	RoutePortfolio  = "/portfolio"
	RouteAdmin      = "/admin"
	RouteProgrammer = "/programmer"
)

// ErrLookupFailed reports that the profile store was unreachable during role
// resolution. Resolution is fail-closed: callers must deny access rather than
// fall back to Student.
var ErrLookupFailed = errors.New("role lookup failed")

// ProgrammerFinder looks up a programmer profile by contact email.
// found is false when no profile matches; err reports store failures only.
type ProgrammerFinder interface {
	FindByEmail(ctx context.Context, email string) (programmer.Programmer, bool, error)
}

// Resolver maps an authenticated email to a Role.
type Resolver struct {
	AdminEmail string
	Finder     ProgrammerFinder
}

// Resolve determines the caller's role.
// The configured admin address wins unconditionally, with no profile lookup.
// Any other email is a Programmer when a profile's contact email matches
// (or the matched profile carries a programmer role tag), otherwise Student.
// PRE: email is the verified email of an authenticated caller
// POST: Returns the role, or ErrLookupFailed when the store is unreachable
func (r *Resolver) Resolve(ctx context.Context, email string) (Role, error) {
	if strings.EqualFold(email, r.AdminEmail) {
		return RoleAdmin, nil
	}

	prof, found, err := r.Finder.FindByEmail(ctx, email)
	if err != nil {
		return RoleAnonymous, ErrLookupFailed
	}
	if !found {
		return RoleStudent, nil
	}
	// A matching contact email is enough; a stored role tag, when present,
	// must also normalise to programmer.
	if prof.Role != "" && !prof.HasProgrammerRole() {
		return RoleStudent, nil
	}
	return RoleProgrammer, nil
}

// Decision is the outcome of a route access check.
type Decision struct {
	Allow    bool
	Redirect string // landing route when denied
}

// Landing returns the role-appropriate landing route.
func Landing(role Role) string {
	switch role {
	case RoleAdmin:
		return RouteAdmin
	case RoleProgrammer:
		return RouteProgrammer
	case RoleStudent:
		return RouteHome
	default:
		return RouteLogin
	}
}

// Decide is the authorization policy: a pure function from (role, route) to
// an allow/deny decision with a redirect target. It is independent of any
// routing framework so the whole table is unit-testable.
// POST: Denied decisions always carry a redirect
func Decide(role Role, route string) Decision {
	switch normalizeRoute(route) {
	case RouteRoot, RouteLogin:
		// Public pages: authenticated users bounce to their landing route.
		if role == RoleAnonymous {
			return Decision{Allow: true}
		}
		return Decision{Redirect: Landing(role)}
	case RouteHome, RoutePortfolio:
		if role == RoleAnonymous {
			return Decision{Redirect: RouteLogin}
		}
		return Decision{Allow: true}
	case RouteAdmin:
		if role == RoleAnonymous {
			return Decision{Redirect: RouteLogin}
		}
		if role == RoleAdmin {
			return Decision{Allow: true}
		}
		return Decision{Redirect: RouteHome}
	case RouteProgrammer:
		if role == RoleAnonymous {
			return Decision{Redirect: RouteLogin}
		}
		if role == RoleAdmin || role == RoleProgrammer {
			return Decision{Allow: true}
		}
		return Decision{Redirect: RouteHome}
	default:
		// Wildcard: anything unknown falls back to the root route.
		return Decision{Redirect: RouteRoot}
	}
}

// normalizeRoute collapses parameterised paths onto their policy entry,
// e.g. /portfolio/abc123 -> /portfolio.
func normalizeRoute(route string) string {
	if route != RouteRoot {
		route = strings.TrimSuffix(route, "/")
	}
	if strings.HasPrefix(route, RoutePortfolio+"/") || route == RoutePortfolio {
		return RoutePortfolio
	}
	return route
}
