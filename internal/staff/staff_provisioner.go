package staff

import (
	"context"
	"database/sql"
	"errors"

	stafferrors "go-leave/internal/staff/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultProvisionAttempts = 5
	staffIDDrawsPerAttempt   = 3
)

// PrepareFunc runs inside the provisioning transaction before the insert.
type PrepareFunc func(ctx context.Context, qtx Repository, s *Staff) error

// Provisioner inserts new staff rows and assigns their human-facing id.
// It is shared by self-registration and administrator onboarding.
//
//go:generate mockgen -source=staff_provisioner.go -destination=mock/staff_provisioner_mock.go -package=mock
type Provisioner interface {
	Provision(ctx context.Context, s *Staff, prepare ...PrepareFunc) error
}

type provisioner struct {
	db          *sql.DB
	repo        Repository
	ids         IDGenerator
	maxAttempts int
	logger      *zap.Logger
}

func NewProvisioner(db *sql.DB, repo Repository, ids IDGenerator, logger ...*zap.Logger) Provisioner {
	l := zap.L().Named("staff.provisioner")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.provisioner")
	}
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &provisioner{
		db:          db,
		repo:        repo,
		ids:         ids,
		maxAttempts: defaultProvisionAttempts,
		logger:      l,
	}
}

// Provision fills in StaffID, default balances and role when absent, then
// inserts s. A staff id collision at insert time restarts the whole
// transaction with a fresh id.
func (p *provisioner) Provision(ctx context.Context, s *Staff, prepare ...PrepareFunc) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Role == "" {
		s.Role = RoleStaff
	}
	if s.LeaveBalances.Data() == nil {
		s.SetBalances(DefaultLeaveBalances())
	}

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		err := p.provisionOnce(ctx, s, prepare)
		if err == nil {
			return nil
		}
		if !errors.Is(err, stafferrors.ErrStaffIDTaken) {
			return err
		}
		p.logger.Debug("staff id collision, retrying",
			zap.String("staff_id", s.StaffID),
			zap.Int("attempt", attempt),
		)
		s.StaffID = ""
	}

	p.logger.Error("staff id allocation exhausted", zap.Int("attempts", p.maxAttempts))
	return stafferrors.ErrStaffIDExhausted
}

func (p *provisioner) provisionOnce(ctx context.Context, s *Staff, prepare []PrepareFunc) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := p.repo.WithTx(tx)

	taken, err := qtx.EmailTaken(ctx, s.Email, nil)
	if err != nil {
		return mapRepositoryError(err)
	}
	if taken {
		return stafferrors.ErrEmailAlreadyExists
	}

	for _, fn := range prepare {
		if err := fn(ctx, qtx, s); err != nil {
			return mapRepositoryError(err)
		}
	}

	staffID, err := p.drawStaffID(ctx, qtx)
	if err != nil {
		return err
	}
	s.StaffID = staffID

	if err := qtx.Create(ctx, s); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

// drawStaffID skips candidates that are already visible as taken. The check
// can race, so the caller still relies on the unique constraint.
func (p *provisioner) drawStaffID(ctx context.Context, qtx Repository) (string, error) {
	var candidate string
	for i := 0; i < staffIDDrawsPerAttempt; i++ {
		candidate = p.ids.Next()
		taken, err := qtx.StaffIDTaken(ctx, candidate)
		if err != nil {
			return "", mapRepositoryError(err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return candidate, nil
}
