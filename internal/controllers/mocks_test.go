package controllers_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/empdesk/empdesk-console/internal/models"
	"github.com/empdesk/empdesk-console/internal/nav"
)

// MockEmployeeAPI implements controllers.EmployeeAPI for testing
type MockEmployeeAPI struct {
	mock.Mock
}

func (m *MockEmployeeAPI) ListEmployees(ctx context.Context, q models.ListQuery) (*models.EmployeePage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmployeePage), args.Error(1)
}

func (m *MockEmployeeAPI) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeAPI) CreateEmployee(ctx context.Context, form models.EmployeeForm) (*models.Employee, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeAPI) UpdateEmployee(ctx context.Context, id string, form models.EmployeeForm) (*models.Employee, error) {
	args := m.Called(ctx, id, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeAPI) DeleteEmployee(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeSessions is an in-memory session store.
type fakeSessions struct {
	mu   sync.Mutex
	sess *models.Session
}

func loggedIn() *fakeSessions {
	return &fakeSessions{sess: &models.Session{Token: "tok", Username: "admin"}}
}

func loggedOut() *fakeSessions {
	return &fakeSessions{}
}

func (s *fakeSessions) Get() (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return models.Session{}, false
	}
	return *s.sess, true
}

func (s *fakeSessions) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
}

// navRecorder records navigation targets.
type navRecorder struct {
	mu     sync.Mutex
	routes []nav.Route
}

func (n *navRecorder) NavigateTo(route nav.Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *navRecorder) last() nav.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

func (n *navRecorder) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.routes)
}

func confirmAlways(string) bool { return true }
func confirmNever(string) bool  { return false }
