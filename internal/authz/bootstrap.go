package authz

import (
	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/logger"
)

// RoleSeed is one built-in role definition.
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds returns the built-in role matrix. The admin role covers
// the whole dashboard; moderators handle reviews and read orders.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleAdmin,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
		{
			Role: constants.RoleModerator,
			Policies: []Policy{
				{Object: "/admin/reviews", Action: "GET"},
				{Object: "/admin/reviews/:id", Action: "PATCH"},
				{Object: "/admin/reviews/:id", Action: "DELETE"},
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/dashboard/*", Action: "GET"},
			},
		},
	}
}

// Bootstrap seeds the built-in roles. Granting an existing policy is a
// no-op, so running it on every start is safe.
func Bootstrap(svc *Service) error {
	for _, seed := range BuiltinRoleSeeds() {
		for _, policy := range seed.Policies {
			if err := svc.GrantRolePolicy(seed.Role, policy.Object, policy.Action); err != nil {
				return err
			}
		}
	}
	logger.Infow("authz_roles_bootstrapped", "roles", len(BuiltinRoleSeeds()))
	return nil
}
