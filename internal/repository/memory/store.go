// Package memory keeps users and attendance records in process memory.
// It backs STORE_TYPE=memory and the service and handler tests.
package memory

import (
	"sync"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// Store is shared by every repository built from it.
type Store struct {
	mu      sync.RWMutex
	users   map[string]user.User
	records map[string]attendance.Record
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]user.User),
		records: make(map[string]attendance.Record),
	}
}

// withUser copies the joined user fields onto rec. Callers hold the lock.
func (s *Store) withUser(rec attendance.Record) attendance.Record {
	u, ok := s.users[rec.UserID]
	if !ok {
		return rec
	}
	name, code, dept := u.Name, u.EmployeeCode, u.Department
	rec.UserName = &name
	rec.EmployeeCode = &code
	rec.Department = &dept
	return rec
}
