package approvalchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	steps, err := c.Steps(approval.KindLeave)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, user.RoleAtasan, steps[0].ApproverRole)
	assert.Equal(t, 1, steps[0].Sequence)
	assert.Equal(t, user.RolePimpinan, steps[1].ApproverRole)
	assert.Equal(t, approval.StatusSubmitted, steps[1].Status)
}

func TestLoadFileOverridesKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chains.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: 1
chains:
  leave: [atasan]
  pension: [kepegawaian, atasan, pimpinan]
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []user.Role{user.RoleAtasan}, c[approval.KindLeave])
	assert.Equal(t, []user.Role{user.RoleKepegawaian, user.RoleAtasan, user.RolePimpinan}, c[approval.KindPension])
	assert.Equal(t, Defaults()[approval.KindSalaryIncrease], c[approval.KindSalaryIncrease])
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"version":      "version: 2\nchains: {}\n",
		"unknown kind": "version: 1\nchains:\n  overtime: [atasan]\n",
		"unknown role": "version: 1\nchains:\n  leave: [camat]\n",
		"empty chain":  "version: 1\nchains:\n  leave: []\n",
		"bad yaml":     "version: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
