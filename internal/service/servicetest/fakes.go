// Package servicetest holds in-memory collaborators shared by the service tests.
package servicetest

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/auth"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/notification"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
)

// Tx runs fn inline. Count records how many transactions were opened.
type Tx struct {
	Count int
}

func (t *Tx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Count++
	return fn(ctx)
}

// Steps is an approval.StepRepository backed by a map.
type Steps struct {
	mu   sync.Mutex
	seq  int
	byID map[string]approval.Step
	Fail error
}

func NewSteps() *Steps {
	return &Steps{byID: make(map[string]approval.Step)}
}

func (s *Steps) CreateSteps(_ context.Context, kind approval.Kind, requestID string, steps []approval.Step) ([]approval.Step, error) {
	if s.Fail != nil {
		return nil, s.Fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]approval.Step, 0, len(steps))
	for _, st := range steps {
		s.seq++
		st.ID = fmt.Sprintf("step-%d", s.seq)
		st.RequestKind = kind
		st.RequestID = requestID
		s.byID[st.ID] = st
		out = append(out, st)
	}
	return out, nil
}

func (s *Steps) ListByRequest(ctx context.Context, kind approval.Kind, requestID string) ([]approval.Step, error) {
	m, err := s.ListByRequests(ctx, kind, []string{requestID})
	if err != nil {
		return nil, err
	}
	return m[requestID], nil
}

func (s *Steps) ListByRequests(_ context.Context, kind approval.Kind, requestIDs []string) (map[string][]approval.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	out := make(map[string][]approval.Step)
	for _, st := range s.byID {
		if st.RequestKind == kind && wanted[st.RequestID] {
			out[st.RequestID] = append(out[st.RequestID], st)
		}
	}
	for id := range out {
		out[id] = approval.Timeline(out[id])
	}
	return out, nil
}

func (s *Steps) UpdateStep(_ context.Context, step approval.Step, from approval.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byID[step.ID]
	if !ok {
		return fmt.Errorf("step %s not found", step.ID)
	}
	if stored.Status != from {
		return approval.ErrInvalidTransition
	}
	s.byID[step.ID] = step
	return nil
}

// Employees is an employee.EmployeeRepository backed by a map.
type Employees struct {
	mu   sync.Mutex
	seq  int
	ByID map[string]employee.Employee
}

func NewEmployees(list ...employee.Employee) *Employees {
	e := &Employees{ByID: make(map[string]employee.Employee)}
	for _, emp := range list {
		e.ByID[emp.ID] = emp
	}
	return e
}

func (e *Employees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	emp, ok := e.ByID[id]
	if !ok || emp.DeletedAt != nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (e *Employees) GetByNIP(_ context.Context, nip string) (employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, emp := range e.ByID {
		if emp.NIP == nip && emp.DeletedAt == nil {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (e *Employees) Create(_ context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	newEmployee.ID = fmt.Sprintf("emp-new-%d", e.seq)
	e.ByID[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (e *Employees) ExistsByNIP(_ context.Context, nip string, excludeID *string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, emp := range e.ByID {
		if emp.NIP != nip || emp.DeletedAt != nil {
			continue
		}
		if excludeID != nil && emp.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (e *Employees) Update(_ context.Context, emp employee.Employee) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.ByID[emp.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	e.ByID[emp.ID] = emp
	return nil
}

func (e *Employees) UpdateBaseSalary(_ context.Context, id string, salary decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	emp, ok := e.ByID[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.BaseSalary = salary
	e.ByID[id] = emp
	return nil
}

func (e *Employees) UpdateEmploymentStatus(_ context.Context, id string, status employee.EmploymentStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	emp, ok := e.ByID[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.EmploymentStatus = status
	e.ByID[id] = emp
	return nil
}

func (e *Employees) SoftDelete(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	emp, ok := e.ByID[id]
	if !ok || emp.DeletedAt != nil {
		return employee.ErrEmployeeNotFound
	}
	now := emp.UpdatedAt
	emp.DeletedAt = &now
	e.ByID[id] = emp
	return nil
}

func (e *Employees) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]employee.Employee, 0, len(e.ByID))
	for _, emp := range e.ByID {
		if emp.DeletedAt == nil {
			out = append(out, emp)
		}
	}
	return out, int64(len(out)), nil
}

// Notifier records every status change it is asked to deliver.
type Notifier struct {
	mu      sync.Mutex
	Changes []notification.StatusChange
}

func (n *Notifier) Notify(_ context.Context, change notification.StatusChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Changes = append(n.Changes, change)
}

func (n *Notifier) Statuses() []approval.Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]approval.Status, 0, len(n.Changes))
	for _, c := range n.Changes {
		out = append(out, c.Status)
	}
	return out
}

// Files is a file.FileService that keeps uploads in memory.
type Files struct {
	mu      sync.Mutex
	Stored  map[string][]byte
	Deleted []string
	Reject  error
}

func NewFiles() *Files {
	return &Files{Stored: make(map[string][]byte)}
}

func (f *Files) UploadAttachment(_ context.Context, folder, employeeID string, file io.Reader, filename string) (string, error) {
	if f.Reject != nil {
		return "", f.Reject
	}
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	url := "/uploads/" + folder + "/" + employeeID + "/" + filename
	f.Stored[url] = b
	return url, nil
}

func (f *Files) DeleteAttachment(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Stored, url)
	f.Deleted = append(f.Deleted, url)
	return nil
}

// Users is a user.UserRepository backed by a map. Employee names are joined
// from Employees when it is set.
type Users struct {
	mu        sync.Mutex
	seq       int
	ByID      map[string]user.User
	Employees *Employees
}

func NewUsers(list ...user.User) *Users {
	u := &Users{ByID: make(map[string]user.User)}
	for _, usr := range list {
		u.ByID[usr.ID] = usr
	}
	return u
}

func (u *Users) join(usr user.User) user.User {
	if u.Employees == nil || usr.EmployeeID == nil {
		return usr
	}
	if emp, err := u.Employees.GetByID(context.Background(), *usr.EmployeeID); err == nil {
		name := emp.FullName
		usr.EmployeeName = &name
	}
	return usr
}

func (u *Users) find(match func(user.User) bool) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, usr := range u.ByID {
		if match(usr) {
			return u.join(usr), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (u *Users) GetByID(_ context.Context, id string) (user.User, error) {
	return u.find(func(usr user.User) bool { return usr.ID == id })
}

func (u *Users) GetByEmail(_ context.Context, email string) (user.User, error) {
	return u.find(func(usr user.User) bool { return usr.Email == email })
}

func (u *Users) GetByUsernameOrEmail(_ context.Context, login string) (user.User, error) {
	return u.find(func(usr user.User) bool { return usr.Username == login || usr.Email == login })
}

func (u *Users) GetByEmployeeID(_ context.Context, employeeID string) (user.User, error) {
	return u.find(func(usr user.User) bool { return usr.EmployeeID != nil && *usr.EmployeeID == employeeID })
}

func (u *Users) Create(_ context.Context, newUser user.User) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.seq++
	newUser.ID = fmt.Sprintf("user-%d", u.seq)
	u.ByID[newUser.ID] = newUser
	return newUser, nil
}

func (u *Users) ExistsByUsernameOrEmail(_ context.Context, username, email string, excludeID *string) (bool, error) {
	_, err := u.find(func(usr user.User) bool {
		if excludeID != nil && usr.ID == *excludeID {
			return false
		}
		return (username != "" && usr.Username == username) || usr.Email == email
	})
	return err == nil, nil
}

func (u *Users) Update(_ context.Context, usr user.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.ByID[usr.ID]; !ok {
		return user.ErrUserNotFound
	}
	usr.EmployeeName = nil
	u.ByID[usr.ID] = usr
	return nil
}

func (u *Users) LinkGoogleAccount(_ context.Context, id, googleID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	usr, ok := u.ByID[id]
	if !ok {
		return user.ErrUserNotFound
	}
	usr.GoogleID = &googleID
	u.ByID[id] = usr
	return nil
}

func (u *Users) Delete(_ context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.ByID[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(u.ByID, id)
	return nil
}

func (u *Users) List(_ context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]user.User, 0, len(u.ByID))
	for _, usr := range u.ByID {
		if filter.Role != nil && string(usr.Role) != *filter.Role {
			continue
		}
		out = append(out, u.join(usr))
	}
	return out, int64(len(out)), nil
}

// RefreshTokens is an auth.RefreshTokenRepository keyed by the raw token.
type RefreshTokens struct {
	mu      sync.Mutex
	Expires map[string]time.Time
	Owners  map[string]string
	Revoked map[string]bool
}

func NewRefreshTokens() *RefreshTokens {
	return &RefreshTokens{
		Expires: make(map[string]time.Time),
		Owners:  make(map[string]string),
		Revoked: make(map[string]bool),
	}
}

func (r *RefreshTokens) Create(_ context.Context, userID string, token string, expiresAt time.Time, _ auth.SessionTrackingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Expires[token] = expiresAt
	r.Owners[token] = userID
	return nil
}

// IsRevoked treats unknown tokens as revoked, like a missing row.
func (r *RefreshTokens) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Expires[token]; !ok {
		return true, nil
	}
	return r.Revoked[token], nil
}

func (r *RefreshTokens) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Revoked[token] = true
	return nil
}

func (r *RefreshTokens) RevokeAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, owner := range r.Owners {
		if owner == userID {
			r.Revoked[token] = true
		}
	}
	return nil
}

func (r *RefreshTokens) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for token, exp := range r.Expires {
		if exp.Before(before) {
			delete(r.Expires, token)
			delete(r.Owners, token)
			delete(r.Revoked, token)
			n++
		}
	}
	return n, nil
}
