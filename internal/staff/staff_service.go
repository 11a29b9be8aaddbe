package staff

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-leave/internal/shared/contextutil"
	stafferrors "go-leave/internal/staff/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	Add(ctx context.Context, req AddStaffRequest) (AddStaffResponse, error)
	GetByStaffID(ctx context.Context, staffID string) (StaffResponse, error)
	Edit(ctx context.Context, staffID string, req EditStaffRequest) error
	Delete(ctx context.Context, staffID string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	provisioner Provisioner
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, provisioner Provisioner, logger ...*zap.Logger) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		provisioner: provisioner,
		logger:      l,
	}
}

func (s *service) Add(ctx context.Context, req AddStaffRequest) (AddStaffResponse, error) {
	balances := DefaultLeaveBalances()
	if req.LeaveBalances != nil {
		if err := validateBalances(req.LeaveBalances); err != nil {
			return AddStaffResponse{}, err
		}
		balances = req.LeaveBalances.Clone()
	}

	st := &Staff{
		Firstname: strings.TrimSpace(req.Firstname),
		Lastname:  strings.TrimSpace(req.Lastname),
		Email:     strings.TrimSpace(req.Email),
		Role:      RoleStaff,
	}
	st.SetBalances(balances)

	managerStaffID := strings.TrimSpace(req.LineManagerID)
	resolveManager := func(ctx context.Context, qtx Repository, st *Staff) error {
		if managerStaffID == "" {
			return nil
		}
		manager, err := qtx.FindByStaffID(ctx, managerStaffID)
		if err != nil {
			if IsNotFound(err) {
				return stafferrors.ErrLineManagerNotFound
			}
			return err
		}
		st.LineManagerID = &manager.ID
		return nil
	}

	if err := s.provisioner.Provision(ctx, st, resolveManager); err != nil {
		return AddStaffResponse{}, err
	}

	s.logger.Info("staff added",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("staff_id", st.StaffID),
	)
	return AddStaffResponse{StaffID: st.StaffID}, nil
}

func (s *service) GetByStaffID(ctx context.Context, staffID string) (StaffResponse, error) {
	st, err := s.repo.FindByStaffID(ctx, staffID)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}
	return MapToResponse(st), nil
}

func (s *service) Edit(ctx context.Context, staffID string, req EditStaffRequest) error {
	if req.LeaveBalances != nil {
		if err := validateBalances(req.LeaveBalances); err != nil {
			return err
		}
	}

	err := s.inTx(ctx, func(qtx Repository) error {
		st, err := qtx.FindByStaffID(ctx, staffID)
		if err != nil {
			return err
		}

		if req.Firstname != nil {
			st.Firstname = strings.TrimSpace(*req.Firstname)
		}
		if req.Lastname != nil {
			st.Lastname = strings.TrimSpace(*req.Lastname)
		}
		if req.Email != nil {
			email := strings.TrimSpace(*req.Email)
			if !strings.EqualFold(email, st.Email) {
				taken, err := qtx.EmailTaken(ctx, email, &st.ID)
				if err != nil {
					return err
				}
				if taken {
					return stafferrors.ErrEmailAlreadyExists
				}
			}
			st.Email = email
		}
		if req.LineManagerID != nil {
			if err := s.assignLineManager(ctx, qtx, st, strings.TrimSpace(*req.LineManagerID)); err != nil {
				return err
			}
		}
		if req.LeaveBalances != nil {
			st.SetBalances(req.LeaveBalances)
		}

		st.UpdatedAt = time.Now()
		return qtx.Update(ctx, st)
	})
	if err != nil {
		return err
	}

	s.logger.Info("staff updated",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("staff_id", staffID),
	)
	return nil
}

func (s *service) Delete(ctx context.Context, staffID string) error {
	err := s.inTx(ctx, func(qtx Repository) error {
		st, err := qtx.FindByStaffID(ctx, staffID)
		if err != nil {
			return err
		}

		deps, err := qtx.CountDependents(ctx, st.ID)
		if err != nil {
			return err
		}
		if deps.Any() {
			return stafferrors.ErrStaffHasDependents
		}

		return qtx.Delete(ctx, st.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("staff deleted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("staff_id", staffID),
	)
	return nil
}

// inTx runs fn against a transaction-bound repository and commits only when
// fn succeeds. Repository errors are translated before they leave the service.
func (s *service) inTx(ctx context.Context, fn func(qtx Repository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(s.repo.WithTx(tx)); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

// assignLineManager applies a lineManagerID from an edit request. An empty
// value clears the relation.
func (s *service) assignLineManager(ctx context.Context, qtx Repository, st *Staff, managerStaffID string) error {
	if managerStaffID == "" {
		st.LineManagerID = nil
		st.LineManager = nil
		return nil
	}
	if managerStaffID == st.StaffID {
		return stafferrors.ErrSelfLineManager
	}

	manager, err := qtx.FindByStaffID(ctx, managerStaffID)
	if err != nil {
		if IsNotFound(err) {
			return stafferrors.ErrLineManagerNotFound
		}
		return err
	}
	st.LineManagerID = &manager.ID
	st.LineManager = manager
	return nil
}

func validateBalances(b LeaveBalances) error {
	for category, days := range b {
		if strings.TrimSpace(category) == "" {
			return stafferrors.ErrInvalidLeaveCategory
		}
		if days < 0 {
			return stafferrors.ErrNegativeLeaveBalance
		}
	}
	return nil
}

func MapToResponse(st *Staff) StaffResponse {
	return StaffResponse{
		ID:            st.ID.String(),
		StaffID:       st.StaffID,
		Firstname:     st.Firstname,
		Lastname:      st.Lastname,
		Email:         st.Email,
		Role:          st.Role,
		LineManagerID: st.LineManagerStaffID(),
		LeaveBalances: st.Balances(),
		CreatedAt:     st.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     st.UpdatedAt.Format(time.RFC3339),
	}
}
