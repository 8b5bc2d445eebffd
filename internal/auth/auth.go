package auth

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

// Capability names a module an employee may operate.
type Capability string

const (
	CapAdmin      Capability = "admin"
	CapReceptive  Capability = "receptive"
	CapTours      Capability = "tours"
	CapRestaurant Capability = "restaurant"
	CapBar        Capability = "bar"
	CapPOS        Capability = "pos"
	CapFinancial  Capability = "financial"
	CapStock      Capability = "stock"
	CapEmployees  Capability = "employees"
	CapPurchases  Capability = "purchases"
)

// Role is the job an employee is registered with.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleReceptionist Role = "receptionist"
	RoleWaiter       Role = "waiter"
	RoleBartender    Role = "bartender"
	RoleCashier      Role = "cashier"
)

var rolePermissions = map[Role][]Capability{
	RoleAdmin: {
		CapAdmin, CapReceptive, CapTours, CapRestaurant, CapBar,
		CapPOS, CapFinancial, CapStock, CapEmployees, CapPurchases,
	},
	RoleManager: {
		CapReceptive, CapTours, CapRestaurant, CapBar,
		CapPOS, CapFinancial, CapStock, CapEmployees, CapPurchases,
	},
	RoleReceptionist: {CapReceptive, CapTours},
	RoleWaiter:       {CapRestaurant, CapBar},
	RoleBartender:    {CapBar},
	RoleCashier:      {CapPOS, CapRestaurant, CapBar},
}

// Permissions returns the capabilities granted to a role. Unknown roles get none.
func (r Role) Permissions() []Capability {
	return slices.Clone(rolePermissions[r])
}

func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Actor is the employee on whose behalf a request runs.
type Actor struct {
	EmployeeID  uuid.UUID
	Name        string
	Role        Role
	Permissions []Capability
}

// NewActor builds an actor whose permissions derive from the role.
func NewActor(employeeID uuid.UUID, name string, role Role) Actor {
	return Actor{
		EmployeeID:  employeeID,
		Name:        name,
		Role:        role,
		Permissions: role.Permissions(),
	}
}

// Can reports whether the actor holds any of the given capabilities.
func (a Actor) Can(caps ...Capability) bool {
	for _, c := range caps {
		if slices.Contains(a.Permissions, c) {
			return true
		}
	}

	return false
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}

// Require returns the request actor if it holds any of caps. A missing actor
// or employee id yields ErrUnauthenticated; missing capabilities yield
// ErrForbidden.
func Require(ctx context.Context, caps ...Capability) (Actor, error) {
	a, ok := FromContext(ctx)
	if !ok || a.EmployeeID == uuid.Nil {
		return Actor{}, apperr.ErrUnauthenticated
	}

	if len(caps) > 0 && !a.Can(caps...) {
		return Actor{}, apperr.ErrForbidden
	}

	return a, nil
}
