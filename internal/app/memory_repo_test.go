package app

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"go-leave/internal/staff"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// memoryRepo is a staff.Repository backed by a map. It reports unique
// violations the way postgres does so the error mapping path is exercised.
type memoryRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]staff.Staff
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[uuid.UUID]staff.Staff{}}
}

func (r *memoryRepo) WithTx(tx *sql.Tx) staff.Repository { return r }

func (r *memoryRepo) Create(ctx context.Context, s *staff.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(s)
}

func (r *memoryRepo) CreateIfAbsent(ctx context.Context, s *staff.Staff) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.insertLocked(s); err != nil {
		if _, ok := err.(*pgconn.PgError); ok {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *memoryRepo) insertLocked(s *staff.Staff) error {
	for _, row := range r.rows {
		if row.StaffID == s.StaffID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_staff_staff_id"}
		}
		if strings.EqualFold(row.Email, s.Email) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_staff_email"}
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	row := *s
	row.LineManager = nil
	r.rows[s.ID] = row
	return nil
}

func (r *memoryRepo) loadLocked(row staff.Staff) *staff.Staff {
	out := row
	out.SetBalances(row.Balances())
	if row.LineManagerID != nil {
		if m, ok := r.rows[*row.LineManagerID]; ok {
			out.LineManager = &m
		}
	}
	return &out
}

func (r *memoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.loadLocked(row), nil
}

func (r *memoryRepo) FindByStaffID(ctx context.Context, staffID string) (*staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.StaffID == staffID {
			return r.loadLocked(row), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryRepo) EmailTaken(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, row := range r.rows {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if strings.EqualFold(row.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) StaffIDTaken(ctx context.Context, staffID string) (bool, error) {
	_, err := r.FindByStaffID(ctx, staffID)
	return err == nil, nil
}

func (r *memoryRepo) Update(ctx context.Context, s *staff.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for id, row := range r.rows {
		if id != s.ID && strings.EqualFold(row.Email, s.Email) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_staff_email"}
		}
	}
	row := *s
	row.LineManager = nil
	r.rows[s.ID] = row
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	for rid, row := range r.rows {
		if row.LineManagerID != nil && *row.LineManagerID == id {
			row.LineManagerID = nil
			r.rows[rid] = row
		}
	}
	return nil
}

func (r *memoryRepo) CountDependents(ctx context.Context, id uuid.UUID) (staff.Dependents, error) {
	return staff.Dependents{}, nil
}
