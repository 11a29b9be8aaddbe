package staff

import (
	"context"
	"database/sql"
	"errors"

	"go-leave/internal/audit"
	"go-leave/internal/leave"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Dependents counts rows that reference a staff record with ON DELETE RESTRICT.
type Dependents struct {
	ManagedLeaveRequests int64
	AuditLogs            int64
}

func (d Dependents) Any() bool {
	return d.ManagedLeaveRequests > 0 || d.AuditLogs > 0
}

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Staff) error
	CreateIfAbsent(ctx context.Context, s *Staff) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	FindByStaffID(ctx context.Context, staffID string) (*Staff, error)
	EmailTaken(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	StaffIDTaken(ctx context.Context, staffID string) (bool, error)
	Update(ctx context.Context, s *Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountDependents(ctx context.Context, id uuid.UUID) (Dependents, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open *sql.Tx so that every statement
// joins the caller's transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txDB := r.db.Session(&gorm.Session{Context: context.Background(), NewDB: true})
	txDB.Statement.ConnPool = tx
	return &repository{db: txDB}
}

func (r *repository) Create(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

// CreateIfAbsent inserts s unless a row with the same staff id or email
// already exists. It reports whether a row was inserted.
func (r *repository) CreateIfAbsent(ctx context.Context, s *Staff) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(s)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	var s Staff
	err := r.db.WithContext(ctx).
		Preload("LineManager").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindByStaffID(ctx context.Context, staffID string) (*Staff, error) {
	var s Staff
	err := r.db.WithContext(ctx).
		Preload("LineManager").
		Where("staff_id = ?", staffID).
		First(&s).Error
	return &s, err
}

func (r *repository) EmailTaken(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Staff{}).
		Where("LOWER(email) = LOWER(?)", email)
	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) StaffIDTaken(ctx context.Context, staffID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Staff{}).
		Where("staff_id = ?", staffID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Staff{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountDependents(ctx context.Context, id uuid.UUID) (Dependents, error) {
	var d Dependents

	err := r.db.WithContext(ctx).
		Model(&leave.LeaveRequest{}).
		Where("line_manager_id = ?", id).
		Where("staff_id <> ?", id).
		Count(&d.ManagedLeaveRequests).Error
	if err != nil {
		return Dependents{}, err
	}

	err = r.db.WithContext(ctx).
		Model(&audit.AuditLog{}).
		Where("performed_by = ?", id).
		Count(&d.AuditLogs).Error
	if err != nil {
		return Dependents{}, err
	}
	return d, nil
}

// IsNotFound reports whether err means the lookup matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
