package permissions

import (
	"net/http"

	"titlehub/internal/http-api/models"
)

// Requester is the identity a request acts under. The zero value is an
// anonymous requester.
type Requester struct {
	ID            string
	Username      string
	Role          string
	Authenticated bool
}

func (r Requester) IsAdmin() bool {
	return r.Authenticated && r.Role == models.RoleAdmin
}

func (r Requester) IsModerator() bool {
	return r.Authenticated && r.Role == models.RoleModerator
}

// Decision is the outcome of a single predicate. Reason is set on deny so
// the caller can log why a request was rejected.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Predicate decides whether a requester may perform a method against a
// collection. Object-level checks live in object.go.
type Predicate func(r Requester, method string) Decision

// SafeMethod reports whether the method is a read that must not mutate state.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOrReadOnly allows safe reads for anyone and mutations for admins only.
// Gates Category/Genre/Title writes.
func AdminOrReadOnly(r Requester, method string) Decision {
	if SafeMethod(method) || r.IsAdmin() {
		return Allow()
	}
	return Deny("admin role required for write access")
}

// IsAdmin allows only authenticated admins, regardless of method.
func IsAdmin(r Requester, method string) Decision {
	if r.IsAdmin() {
		return Allow()
	}
	return Deny("admin role required")
}

// AuthenticatedOrReadOnly allows safe reads for anyone and any write for an
// authenticated requester.
func AuthenticatedOrReadOnly(r Requester, method string) Decision {
	if SafeMethod(method) || r.Authenticated {
		return Allow()
	}
	return Deny("authentication required for write access")
}

// AuthorOrAdminOrModerator is the collection tier of the two-tier review and
// comment check. It admits exactly what AuthenticatedOrReadOnly admits;
// authorship and role are re-checked against the loaded object afterwards.
// Deferring the object check keeps unauthorized requesters from probing for
// existence.
func AuthorOrAdminOrModerator(r Requester, method string) Decision {
	return AuthenticatedOrReadOnly(r, method)
}

// AbleToChangeRoles denies any request body that sets a role field unless the
// requester is an admin. A field-level guard, independent of the method.
func AbleToChangeRoles(r Requester, fields map[string]any) Decision {
	if _, ok := fields["role"]; !ok {
		return Allow()
	}
	if r.IsAdmin() {
		return Allow()
	}
	return Deny("only admins may change roles")
}

// Chain combines predicates into an ordered short-circuit AND: the first
// deny wins, its reason preserved.
func Chain(preds ...Predicate) Predicate {
	return func(r Requester, method string) Decision {
		for _, p := range preds {
			if d := p(r, method); !d.Allowed {
				return d
			}
		}
		return Allow()
	}
}

// DenialStatus maps a deny to an HTTP status: 401 for an anonymous requester
// attempting an unsafe method, 403 otherwise.
func DenialStatus(r Requester, method string) int {
	if !r.Authenticated && !SafeMethod(method) {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}
