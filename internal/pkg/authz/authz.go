package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// Authorizer answers role/permission questions from a casbin RBAC model
// seeded with the role table in the user package.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

func NewAuthorizer() (*Authorizer, error) {
	return NewAuthorizerWith(user.RolePermissions, user.RoleInherits)
}

// NewAuthorizerWith builds an authorizer from an explicit role table.
func NewAuthorizerWith(perms map[user.Role][]user.Permission, inherits map[user.Role][]user.Role) (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: load model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: create enforcer: %w", err)
	}

	for role, list := range perms {
		for _, p := range list {
			obj, act := split(p)
			if _, err := enforcer.AddPolicy(Subject(role), obj, act); err != nil {
				return nil, fmt.Errorf("authz: add policy %s: %w", p, err)
			}
		}
	}
	for role, parents := range inherits {
		for _, parent := range parents {
			if _, err := enforcer.AddGroupingPolicy(Subject(role), Subject(parent)); err != nil {
				return nil, fmt.Errorf("authz: add inheritance %s -> %s: %w", role, parent, err)
			}
		}
	}

	return &Authorizer{enforcer: enforcer}, nil
}

// Subject is the casbin subject for a role.
func Subject(role user.Role) string {
	return "role:" + strings.ToLower(strings.TrimSpace(string(role)))
}

// split turns "leave.view_all" into ("leave", "view_all").
func split(p user.Permission) (string, string) {
	obj, act, ok := strings.Cut(string(p), ".")
	if !ok {
		return obj, "*"
	}
	return obj, act
}

// Can reports whether role holds permission p, directly or through inheritance.
func (a *Authorizer) Can(role user.Role, p user.Permission) bool {
	obj, act := split(p)
	ok, err := a.enforcer.Enforce(Subject(role), obj, act)
	return err == nil && ok
}

// Permissions lists every permission role holds, sorted.
func (a *Authorizer) Permissions(role user.Role) []string {
	rules, err := a.enforcer.GetImplicitPermissionsForUser(Subject(role))
	if err != nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(rules))
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		p := rule[1] + "." + rule[2]
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
