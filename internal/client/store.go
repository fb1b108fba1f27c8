package client

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"golang.org/x/sync/errgroup"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot is a point-in-time copy of a Query.
type Snapshot[T any] struct {
	State     State
	Data      T
	Err       error
	UpdatedAt time.Time
}

// Query holds the result of one read operation.
// A failed refresh keeps the last loaded data.
type Query[T any] struct {
	mu   sync.RWMutex
	snap Snapshot[T]
}

func (q *Query[T]) Snapshot() Snapshot[T] {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.snap
}

func (q *Query[T]) run(ctx context.Context, fetch func(context.Context) (T, error)) error {
	q.mu.Lock()
	q.snap.State = StateLoading
	q.snap.Err = nil
	q.mu.Unlock()

	data, err := fetch(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.snap.UpdatedAt = time.Now()
	if err != nil {
		q.snap.State = StateFailed
		q.snap.Err = err
		return err
	}
	q.snap.State = StateLoaded
	q.snap.Data = data
	return nil
}

func (q *Query[T]) reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.snap = Snapshot[T]{}
}

// Store keeps the session and one Query per screen.
type Store struct {
	client *Client

	Session           Query[auth.LoginResponse]
	History           Query[[]attendance.RecordResponse]
	Today             Query[attendance.TodayResponse]
	Summary           Query[report.SummaryResponse]
	EmployeeDashboard Query[dashboard.EmployeeDashboard]
	ManagerDashboard  Query[dashboard.ManagerSnapshot]
	Ledger            Query[[]attendance.RecordResponse]
}

func NewStore(c *Client) *Store {
	return &Store{client: c}
}

// Login authenticates and loads the session.
func (s *Store) Login(ctx context.Context, email, password string) error {
	return s.Session.run(ctx, func(ctx context.Context) (auth.LoginResponse, error) {
		return s.client.Login(ctx, auth.LoginRequest{Email: email, Password: password})
	})
}

// Logout revokes the token and clears every query.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.client.Logout(ctx); err != nil {
		return err
	}
	s.Session.reset()
	s.History.reset()
	s.Today.reset()
	s.Summary.reset()
	s.EmployeeDashboard.reset()
	s.ManagerDashboard.reset()
	s.Ledger.reset()
	return nil
}

func (s *Store) userID() string {
	return s.Session.Snapshot().Data.User.ID
}

// RefreshEmployee loads the signed-in employee's screens in parallel.
func (s *Store) RefreshEmployee(ctx context.Context) error {
	id := s.userID()
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.History.run(gCtx, func(ctx context.Context) ([]attendance.RecordResponse, error) {
			return s.client.History(ctx, id)
		})
	})
	g.Go(func() error {
		return s.Today.run(gCtx, func(ctx context.Context) (attendance.TodayResponse, error) {
			return s.client.Today(ctx, id)
		})
	})
	g.Go(func() error {
		return s.Summary.run(gCtx, func(ctx context.Context) (report.SummaryResponse, error) {
			return s.client.Summary(ctx, id)
		})
	})
	g.Go(func() error {
		return s.EmployeeDashboard.run(gCtx, func(ctx context.Context) (dashboard.EmployeeDashboard, error) {
			return s.client.EmployeeDashboard(ctx, id)
		})
	})
	return g.Wait()
}

// RefreshManager loads the snapshot and the filtered ledger in parallel.
func (s *Store) RefreshManager(ctx context.Context, filter report.LedgerFilter) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.ManagerDashboard.run(gCtx, s.client.ManagerDashboard)
	})
	g.Go(func() error {
		return s.Ledger.run(gCtx, func(ctx context.Context) ([]attendance.RecordResponse, error) {
			return s.client.Ledger(ctx, filter)
		})
	})
	return g.Wait()
}

// CheckIn records the check-in and reloads the employee screens.
func (s *Store) CheckIn(ctx context.Context, reason string) (attendance.RecordResponse, error) {
	rec, err := s.client.CheckIn(ctx, reason)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return rec, s.RefreshEmployee(ctx)
}

// CheckOut records the check-out and reloads the employee screens.
func (s *Store) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	rec, err := s.client.CheckOut(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return rec, s.RefreshEmployee(ctx)
}
