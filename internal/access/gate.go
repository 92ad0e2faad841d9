package access

import (
	"errors"
	"fmt"
	"strings"
)

// Class is the access class of a view.
type Class string

// View classes.
const (
	ClassPermitAll         Class = "permit_all"
	ClassAuthenticatedOnly Class = "authenticated_only"
	ClassUserRole          Class = "user_role"
	ClassAdminRole         Class = "admin_role"
	ClassUnknown           Class = "unknown"
)

// Table errors
var (
	ErrEmptyViewName   = errors.New("view name cannot be empty")
	ErrOverlappingView = errors.New("view listed in more than one access class")
)

// viewSuffix is dropped from view identifiers before lookup, so "homeView"
// and "home" name the same view.
const viewSuffix = "View"

// Table lists the views of each access class.
type Table struct {
	PermitAll         []string
	AuthenticatedOnly []string
	UserRole          []string
	AdminRole         []string
}

// Gate answers access questions for a fixed Table.
type Gate struct {
	classes map[string]Class
}

// NewGate validates the table and builds a Gate from it. Names are
// normalized the same way lookups are, so a table may mix "home" and
// "homeView" as long as they don't collide.
func NewGate(t Table) (*Gate, error) {
	g := &Gate{classes: make(map[string]Class)}

	sets := []struct {
		class Class
		views []string
	}{
		{ClassPermitAll, t.PermitAll},
		{ClassAuthenticatedOnly, t.AuthenticatedOnly},
		{ClassUserRole, t.UserRole},
		{ClassAdminRole, t.AdminRole},
	}

	for _, set := range sets {
		for _, v := range set.views {
			name := Normalize(v)
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("%w: in %s", ErrEmptyViewName, set.class)
			}
			if prev, ok := g.classes[name]; ok && prev != set.class {
				return nil, fmt.Errorf("%w: %q is in both %s and %s", ErrOverlappingView, name, prev, set.class)
			}
			g.classes[name] = set.class
		}
	}

	return g, nil
}

// Normalize removes the first "View" occurrence from a view identifier.
func Normalize(viewID string) string {
	return strings.Replace(viewID, viewSuffix, "", 1)
}

// Classify returns the class a view belongs to, or ClassUnknown.
func (g *Gate) Classify(viewID string) Class {
	if c, ok := g.classes[Normalize(viewID)]; ok {
		return c
	}
	return ClassUnknown
}

// IsAccessGranted reports whether a caller may open the view.
//
// Permit-all views are open to everyone. Every other view requires an
// authenticated caller. Authenticated-only views are then granted. Role
// checks are not implemented, so user-role and admin-role views are denied
// even to authenticated callers, as are views missing from the table.
func (g *Gate) IsAccessGranted(viewID string, authenticated bool) bool {
	class := g.Classify(viewID)

	if class == ClassPermitAll {
		return true
	}
	if !authenticated {
		return false
	}

	switch class {
	case ClassAuthenticatedOnly:
		return true
	case ClassUserRole, ClassAdminRole:
		return false
	default:
		return false
	}
}
