package approvalchain

import (
	"errors"
	"fmt"
	"os"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"gopkg.in/yaml.v3"
)

// Chains maps each request kind to the ordered roles that must approve it.
type Chains map[approval.Kind][]user.Role

type chainFile struct {
	Version int                 `yaml:"version"`
	Chains  map[string][]string `yaml:"chains"`
}

func Defaults() Chains {
	return Chains{
		approval.KindLeave:          {user.RoleAtasan, user.RolePimpinan},
		approval.KindStudyPermit:    {user.RoleAtasan, user.RoleKepegawaian, user.RolePimpinan},
		approval.KindSalaryIncrease: {user.RoleKepegawaian, user.RolePimpinan},
		approval.KindPension:        {user.RoleKepegawaian, user.RolePimpinan},
	}
}

// Load reads chains from a YAML file. An empty path yields the defaults, and
// kinds missing from the file keep their default chain.
func Load(path string) (Chains, error) {
	chains := Defaults()
	if path == "" {
		return chains, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("approvalchain: read %s: %w", path, err)
	}
	return Parse(b)
}

func Parse(b []byte) (Chains, error) {
	var f chainFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("approvalchain: decode: %w", err)
	}
	if f.Version != 1 {
		return nil, errors.New("approvalchain: unsupported version")
	}

	chains := Defaults()
	for rawKind, rawRoles := range f.Chains {
		kind, err := approval.ParseKind(rawKind)
		if err != nil {
			return nil, fmt.Errorf("approvalchain: %q: %w", rawKind, err)
		}
		if len(rawRoles) == 0 {
			return nil, fmt.Errorf("approvalchain: %s: %w", kind, approval.ErrEmptyChain)
		}
		roles := make([]user.Role, 0, len(rawRoles))
		for _, r := range rawRoles {
			role, ok := user.ParseRole(r)
			if !ok {
				return nil, fmt.Errorf("approvalchain: %s: unknown role %q", kind, r)
			}
			roles = append(roles, role)
		}
		chains[kind] = roles
	}
	return chains, nil
}

// Steps builds the pending approval steps for a new request of kind.
func (c Chains) Steps(kind approval.Kind) ([]approval.Step, error) {
	roles, ok := c[kind]
	if !ok {
		return nil, approval.ErrUnknownKind
	}
	return approval.NewSteps(kind, roles)
}
