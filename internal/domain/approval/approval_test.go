package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		input    string
		category string
		color    string
		icon     string
	}{
		{"DITOLAK", "rejected", "red", "x-circle"},
		{"ditolak", "rejected", "red", "x-circle"},
		{"  DiTolak ", "rejected", "red", "x-circle"},
		{"DIAJUKAN", "pending", "yellow", "clock"},
		{"menunggu", "pending", "yellow", "clock"},
		{"DISETUJUI", "approved", "green", "check-circle"},
		{"DIREVISI", "revision", "orange", "edit"},
		{"SELESAI", "completed", "blue", "check-square"},
		{"DIBATALKAN", "cancelled", "slate", "slash"},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			b := Classify(c.input)
			assert.Equal(t, c.category, b.Category)
			assert.Equal(t, c.color, b.Color)
			assert.Equal(t, c.icon, b.Icon)
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	for _, s := range []string{"", "   ", "ARCHIVED", "??"} {
		assert.NotPanics(t, func() {
			b := Classify(s)
			assert.Equal(t, "unknown", b.Category)
			assert.Equal(t, "gray", b.Color)
		})
	}
}

func TestClassifyReturnsCopies(t *testing.T) {
	b := Classify("ARCHIVED")
	b.Color = "red"
	assert.Equal(t, "gray", Classify("??").Color)

	b = Classify("ditolak")
	b.Icon = "check"
	assert.Equal(t, "x-circle", Classify("DITOLAK").Icon)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus(" disetujui ")
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, s)

	_, ok = ParseStatus("approved-ish")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusSubmitted, StatusApproved))
	assert.True(t, CanTransition(StatusSubmitted, StatusRevision))
	assert.True(t, CanTransition(StatusRevision, StatusSubmitted))
	assert.True(t, CanTransition(StatusApproved, StatusCompleted))
	assert.True(t, CanTransition(StatusApproved, StatusCancelled))

	assert.False(t, CanTransition(StatusRejected, StatusSubmitted))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusSubmitted))
	assert.False(t, CanTransition(StatusSubmitted, StatusCompleted))
}

func TestTimelineOrdersBySequence(t *testing.T) {
	steps := []Step{
		{ID: "c", Sequence: 3},
		{ID: "a", Sequence: 1},
		{ID: "b", Sequence: 2},
	}

	ordered := Timeline(steps)

	require.Len(t, ordered, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{ordered[0].ID, ordered[1].ID, ordered[2].ID})
	// input untouched
	assert.Equal(t, "c", steps[0].ID)
}

func TestTimelineResponse(t *testing.T) {
	steps := []Step{
		{ID: "2", Sequence: 2, ApproverRole: user.RolePimpinan, Status: StatusSubmitted},
		{ID: "1", Sequence: 1, ApproverRole: user.RoleAtasan, Status: StatusRejected},
	}

	out := TimelineResponse(steps)

	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Sequence)
	assert.Equal(t, "red", out[0].Badge.Color)
	assert.Equal(t, "pimpinan", out[1].ApproverRole)
}

func twoStepChain(t *testing.T) []Step {
	steps, err := NewSteps(KindLeave, []user.Role{user.RoleAtasan, user.RolePimpinan})
	require.NoError(t, err)
	return steps
}

func TestNewSteps(t *testing.T) {
	steps := twoStepChain(t)

	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].Sequence)
	assert.Equal(t, 2, steps[1].Sequence)
	assert.Equal(t, StatusSubmitted, steps[1].Status)

	_, err := NewSteps(KindLeave, nil)
	assert.ErrorIs(t, err, ErrEmptyChain)
}

func TestDecideApproveAdvancesThenFinalizes(t *testing.T) {
	now := time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)
	steps := twoStepChain(t)

	out, err := Decide(StatusSubmitted, steps, Actor{UserID: "u1", Role: user.RoleAtasan}, DecisionApprove, "", now)
	require.NoError(t, err)
	assert.False(t, out.Final)
	assert.Equal(t, StatusSubmitted, out.RequestStatus)
	assert.Equal(t, StatusApproved, out.Steps[0].Status)
	assert.Equal(t, 1, out.Step.Sequence)

	_, err = Decide(StatusSubmitted, out.Steps, Actor{UserID: "u1", Role: user.RoleAtasan}, DecisionApprove, "", now)
	assert.ErrorIs(t, err, ErrNotCurrentApprover)

	out, err = Decide(StatusSubmitted, out.Steps, Actor{UserID: "u2", Name: "Kepala Dinas", Role: user.RolePimpinan}, DecisionApprove, "ok", now)
	require.NoError(t, err)
	assert.True(t, out.Final)
	assert.Equal(t, StatusApproved, out.RequestStatus)
	require.NotNil(t, out.Step.ApproverName)
	assert.Equal(t, "Kepala Dinas", *out.Step.ApproverName)
	require.NotNil(t, out.Step.DecidedAt)
	assert.Equal(t, now, *out.Step.DecidedAt)
}

func TestDecideRejectAndRevise(t *testing.T) {
	now := time.Now()
	steps := twoStepChain(t)
	atasan := Actor{UserID: "u1", Role: user.RoleAtasan}

	_, err := Decide(StatusSubmitted, steps, atasan, DecisionReject, "  ", now)
	assert.ErrorIs(t, err, ErrNoteRequired)

	out, err := Decide(StatusSubmitted, steps, atasan, DecisionReject, "tanggal bentrok", now)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, out.RequestStatus)
	assert.Equal(t, StatusRejected, out.Step.Status)

	out, err = Decide(StatusSubmitted, steps, atasan, DecisionRevise, "lengkapi alamat", now)
	require.NoError(t, err)
	assert.Equal(t, StatusRevision, out.RequestStatus)

	resubmitted, err := Resubmit(StatusRevision, out.Steps)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, resubmitted.RequestStatus)
	assert.Equal(t, StatusSubmitted, resubmitted.Steps[0].Status)
	assert.Nil(t, resubmitted.Steps[0].Note)
}

func TestDecideGuards(t *testing.T) {
	now := time.Now()
	steps := twoStepChain(t)

	_, err := Decide(StatusRejected, steps, Actor{Role: user.RoleAtasan}, DecisionApprove, "", now)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Decide(StatusSubmitted, steps, Actor{Role: user.RolePegawai}, DecisionApprove, "", now)
	assert.ErrorIs(t, err, ErrNotCurrentApprover)

	_, err = Decide(StatusSubmitted, steps, Actor{Role: user.RoleAtasan}, Decision("maybe"), "", now)
	assert.ErrorIs(t, err, ErrInvalidDecision)

	for i := range steps {
		steps[i].Status = StatusApproved
	}
	_, err = Decide(StatusSubmitted, steps, Actor{Role: user.RoleAdmin}, DecisionApprove, "", now)
	assert.ErrorIs(t, err, ErrNoPendingStep)
}

func TestAdminMayDecideAnyStep(t *testing.T) {
	out, err := Decide(StatusSubmitted, twoStepChain(t), Actor{UserID: "root", Role: user.RoleAdmin}, DecisionApprove, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Step.Sequence)
}

func TestResubmitRequiresRevision(t *testing.T) {
	_, err := Resubmit(StatusApproved, twoStepChain(t))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision(" APPROVE ")
	require.NoError(t, err)
	assert.Equal(t, DecisionApprove, d)
	assert.Equal(t, StatusRevision, DecisionRevise.Status())

	_, err = ParseDecision("")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestCancel(t *testing.T) {
	owner := "emp-1"
	applicant := Actor{EmployeeID: &owner, Role: user.RolePegawai}
	hr := Actor{Role: user.RoleKepegawaian, CancelAny: true}

	assert.NoError(t, Cancel(StatusSubmitted, owner, applicant))
	assert.NoError(t, Cancel(StatusRevision, owner, applicant))
	assert.ErrorIs(t, Cancel(StatusApproved, owner, applicant), ErrCancelNotAllowed)
	assert.ErrorIs(t, Cancel(StatusSubmitted, "emp-2", applicant), ErrCancelNotAllowed)
	assert.NoError(t, Cancel(StatusApproved, "emp-2", hr))
	assert.ErrorIs(t, Cancel(StatusCompleted, owner, hr), ErrInvalidTransition)
	assert.ErrorIs(t, Cancel(StatusRejected, owner, applicant), ErrInvalidTransition)
}
