package auth

import (
	"context"
	"errors"
	"strings"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/token"
	"go-leave/internal/staff"
	stafferrors "go-leave/internal/staff/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Default administrator account created at startup.
const (
	AdminStaffID   = "admin"
	AdminFirstname = "System"
	AdminLastname  = "Administrator"
	AdminEmail     = "admin@example.com"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, callerID string) (MeResponse, error)
	Authorize(ctx context.Context, callerID, resource, action string) error
	EnsureDefaultAdmin(ctx context.Context) (string, error)
}

type service struct {
	staffRepo     staff.Repository
	provisioner   staff.Provisioner
	rbac          rbac.Service
	tokens        *token.Manager
	adminPassword string
	logger        *zap.Logger
}

func NewService(
	staffRepo staff.Repository,
	provisioner staff.Provisioner,
	rbacService rbac.Service,
	tokens *token.Manager,
	adminPassword string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		staffRepo:     staffRepo,
		provisioner:   provisioner,
		rbac:          rbacService,
		tokens:        tokens,
		adminPassword: adminPassword,
		logger:        l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt limits input to 72 bytes; multi-byte runes can pass the binding check.
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return RegisterResponse{}, autherrors.ErrPasswordTooLong
		}
		return RegisterResponse{}, err
	}

	st := &staff.Staff{
		Firstname: strings.TrimSpace(req.Firstname),
		Lastname:  strings.TrimSpace(req.Lastname),
		Email:     strings.TrimSpace(req.Email),
		Password:  string(hash),
		Role:      staff.RoleStaff,
	}

	if err := s.provisioner.Provision(ctx, st); err != nil {
		return RegisterResponse{}, err
	}

	s.logger.Info("staff registered", zap.String("staff_id", st.StaffID))
	return RegisterResponse{Email: st.Email, StaffID: st.StaffID}, nil
}

// Login never reveals which part of the credential was wrong.
func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	st, err := s.staffRepo.FindByStaffID(ctx, strings.TrimSpace(req.StaffID))
	if err != nil {
		if staff.IsNotFound(err) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if !st.HasCredential() {
		s.logger.Debug("login for staff without credential", zap.String("staff_id", st.StaffID))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(st.Password), []byte(req.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(token.Identity{ID: st.ID.String(), Role: st.Role})
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{Token: signed, Role: st.Role}, nil
}

func (s *service) Me(ctx context.Context, callerID string) (MeResponse, error) {
	id, err := uuid.Parse(callerID)
	if err != nil {
		return MeResponse{}, autherrors.ErrInvalidToken
	}

	st, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		if staff.IsNotFound(err) {
			return MeResponse{}, stafferrors.ErrStaffNotFound
		}
		return MeResponse{}, err
	}

	perms, err := s.rbac.PermissionsFor(st.Role)
	if err != nil {
		return MeResponse{}, err
	}

	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.Resource + ":" + p.Action
	}

	return MeResponse{
		StaffResponse: staff.MapToResponse(st),
		Permissions:   names,
	}, nil
}

// Authorize resolves the caller's current role from storage, so a role change
// takes effect without waiting for the token to expire.
func (s *service) Authorize(ctx context.Context, callerID, resource, action string) error {
	id, err := uuid.Parse(callerID)
	if err != nil {
		return apperror.ErrForbidden
	}

	st, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		if staff.IsNotFound(err) {
			return apperror.ErrForbidden
		}
		return err
	}

	allowed, err := s.rbac.Enforce(rbac.EnforceRequest{
		Role:     st.Role,
		Resource: resource,
		Action:   action,
	})
	if err != nil {
		return err
	}
	if !allowed {
		s.logger.Debug("access denied",
			zap.String("staff_id", st.StaffID),
			zap.String("resource", resource),
			zap.String("action", action),
		)
		return apperror.ErrForbidden
	}
	return nil
}

// EnsureDefaultAdmin creates the administrator account if it is missing and
// returns its id. An existing account, including its password, is left as is.
func (s *service) EnsureDefaultAdmin(ctx context.Context) (string, error) {
	existing, err := s.staffRepo.FindByStaffID(ctx, AdminStaffID)
	if err == nil {
		return existing.ID.String(), nil
	}
	if !staff.IsNotFound(err) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	admin := &staff.Staff{
		ID:        uuid.New(),
		StaffID:   AdminStaffID,
		Firstname: AdminFirstname,
		Lastname:  AdminLastname,
		Email:     AdminEmail,
		Password:  string(hash),
		Role:      staff.RoleAdmin,
	}
	admin.SetBalances(staff.DefaultLeaveBalances())

	inserted, err := s.staffRepo.CreateIfAbsent(ctx, admin)
	if err != nil {
		return "", err
	}
	if inserted {
		s.logger.Info("default admin created", zap.String("staff_id", AdminStaffID))
		return admin.ID.String(), nil
	}

	// Another process won the race.
	existing, err = s.staffRepo.FindByStaffID(ctx, AdminStaffID)
	if err != nil {
		return "", err
	}
	return existing.ID.String(), nil
}
