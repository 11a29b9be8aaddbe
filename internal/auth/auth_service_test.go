package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-leave/internal/auth"
	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/rbac"
	rbacMock "go-leave/internal/rbac/mock"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/token"
	"go-leave/internal/staff"
	stafferrors "go-leave/internal/staff/errors"
	staffMock "go-leave/internal/staff/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service     auth.Service
	repo        *staffMock.MockRepository
	provisioner *staffMock.MockProvisioner
	rbac        *rbacMock.MockService
	tokens      *token.Manager
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	repo := staffMock.NewMockRepository(ctrl)
	provisioner := staffMock.NewMockProvisioner(ctrl)
	rbacService := rbacMock.NewMockService(ctrl)
	tokens := token.NewManager("test-secret", time.Hour, "leave-api")

	return &serviceDeps{
		service:     auth.NewService(repo, provisioner, rbacService, tokens, "admin-pass"),
		repo:        repo,
		provisioner: provisioner,
		rbac:        rbacService,
		tokens:      tokens,
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	req := auth.RegisterRequest{
		Firstname: "Jane",
		Lastname:  "Doe",
		Email:     "jane@example.com",
		Password:  "secret123",
	}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.provisioner.EXPECT().
			Provision(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, s *staff.Staff, _ ...staff.PrepareFunc) error {
				assert.Equal(t, "Jane", s.Firstname)
				assert.Equal(t, "Doe", s.Lastname)
				assert.Equal(t, req.Email, s.Email)
				assert.Equal(t, staff.RoleStaff, s.Role)
				assert.NotEqual(t, req.Password, s.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(req.Password)))
				s.StaffID = "482913"
				return nil
			})

		resp, err := deps.service.Register(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, auth.RegisterResponse{Email: req.Email, StaffID: "482913"}, resp)
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.provisioner.EXPECT().
			Provision(ctx, gomock.Any()).
			Return(stafferrors.ErrEmailAlreadyExists)

		_, err := deps.service.Register(ctx, req)

		assert.ErrorIs(t, err, stafferrors.ErrEmailAlreadyExists)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 400, httpErr.Status)
		assert.Equal(t, "Email already exists", httpErr.Message)
	})

	t.Run("password longer than 72 bytes", func(t *testing.T) {
		deps := setupServiceTest(t)

		long := req
		long.Password = strings.Repeat("é", 40)

		_, err := deps.service.Register(ctx, long)

		assert.ErrorIs(t, err, autherrors.ErrPasswordTooLong)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 400, httpErr.Status)
		assert.Equal(t, "Password must be at most 72 bytes", httpErr.Message)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	staffUUID := uuid.New()
	member := &staff.Staff{
		ID:       staffUUID,
		StaffID:  "123456",
		Email:    "jane@example.com",
		Password: hashed(t, "secret123"),
		Role:     staff.RoleStaff,
	}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByStaffID(ctx, "123456").Return(member, nil)

		resp, err := deps.service.Login(ctx, auth.LoginRequest{StaffID: "123456", Password: "secret123"})

		require.NoError(t, err)
		assert.Equal(t, staff.RoleStaff, resp.Role)

		identity, err := deps.tokens.Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, staffUUID.String(), identity.ID)
		assert.Equal(t, staff.RoleStaff, identity.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByStaffID(ctx, "123456").Return(member, nil)

		_, err := deps.service.Login(ctx, auth.LoginRequest{StaffID: "123456", Password: "nope"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown staff id", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByStaffID(ctx, "999999").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Login(ctx, auth.LoginRequest{StaffID: "999999", Password: "secret123"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("staff without credential", func(t *testing.T) {
		deps := setupServiceTest(t)

		noPassword := &staff.Staff{ID: uuid.New(), StaffID: "654321", Role: staff.RoleStaff}
		deps.repo.EXPECT().FindByStaffID(ctx, "654321").Return(noPassword, nil)

		_, err := deps.service.Login(ctx, auth.LoginRequest{StaffID: "654321", Password: ""})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
		assert.Equal(t, 401, apperror.ToHTTP(err).Status)
	})

	t.Run("repository failure", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbErr := errors.New("connection reset")
		deps.repo.EXPECT().FindByStaffID(ctx, "123456").Return(nil, dbErr)

		_, err := deps.service.Login(ctx, auth.LoginRequest{StaffID: "123456", Password: "secret123"})
		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, 500, apperror.ToHTTP(err).Status)
	})
}

func TestAuthService_Authorize(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	admin := &staff.Staff{ID: adminID, StaffID: "admin", Role: staff.RoleAdmin}

	t.Run("allowed", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByID(ctx, adminID).Return(admin, nil)
		deps.rbac.EXPECT().
			Enforce(rbac.EnforceRequest{Role: staff.RoleAdmin, Resource: "staff", Action: "create"}).
			Return(true, nil)

		assert.NoError(t, deps.service.Authorize(ctx, adminID.String(), "staff", "create"))
	})

	t.Run("denied", func(t *testing.T) {
		deps := setupServiceTest(t)

		memberID := uuid.New()
		deps.repo.EXPECT().FindByID(ctx, memberID).Return(&staff.Staff{ID: memberID, Role: staff.RoleStaff}, nil)
		deps.rbac.EXPECT().
			Enforce(rbac.EnforceRequest{Role: staff.RoleStaff, Resource: "staff", Action: "delete"}).
			Return(false, nil)

		err := deps.service.Authorize(ctx, memberID.String(), "staff", "delete")
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("caller no longer exists", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByID(ctx, adminID).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Authorize(ctx, adminID.String(), "staff", "read")
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("malformed caller id", func(t *testing.T) {
		deps := setupServiceTest(t)

		err := deps.service.Authorize(ctx, "not-a-uuid", "staff", "read")
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	admin := &staff.Staff{ID: adminID, StaffID: "admin", Email: "admin@example.com", Role: staff.RoleAdmin}
	admin.SetBalances(staff.DefaultLeaveBalances())

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByID(ctx, adminID).Return(admin, nil)
		deps.rbac.EXPECT().PermissionsFor(staff.RoleAdmin).Return([]rbac.Permission{
			{Role: staff.RoleAdmin, Resource: "staff", Action: "create"},
			{Role: staff.RoleAdmin, Resource: "staff", Action: "read"},
		}, nil)

		resp, err := deps.service.Me(ctx, adminID.String())

		require.NoError(t, err)
		assert.Equal(t, "admin", resp.StaffID)
		assert.Equal(t, []string{"staff:create", "staff:read"}, resp.Permissions)
		assert.Equal(t, 20, resp.LeaveBalances[staff.AnnualLeave])
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByID(ctx, adminID).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Me(ctx, adminID.String())
		assert.ErrorIs(t, err, stafferrors.ErrStaffNotFound)
	})
}

func TestAuthService_EnsureDefaultAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates admin when missing", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByStaffID(ctx, auth.AdminStaffID).Return(nil, gorm.ErrRecordNotFound)

		var created *staff.Staff
		deps.repo.EXPECT().
			CreateIfAbsent(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, s *staff.Staff) (bool, error) {
				created = s
				return true, nil
			})

		id, err := deps.service.EnsureDefaultAdmin(ctx)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, created.ID.String(), id)
		assert.Equal(t, auth.AdminStaffID, created.StaffID)
		assert.Equal(t, auth.AdminEmail, created.Email)
		assert.Equal(t, "System", created.Firstname)
		assert.Equal(t, "Administrator", created.Lastname)
		assert.True(t, created.IsAdmin())
		assert.Equal(t, staff.DefaultLeaveBalances(), created.Balances())
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("admin-pass")))
	})

	t.Run("existing admin untouched", func(t *testing.T) {
		deps := setupServiceTest(t)

		existing := &staff.Staff{ID: uuid.New(), StaffID: auth.AdminStaffID, Password: "kept", Role: staff.RoleAdmin}
		deps.repo.EXPECT().FindByStaffID(ctx, auth.AdminStaffID).Return(existing, nil)

		id, err := deps.service.EnsureDefaultAdmin(ctx)

		require.NoError(t, err)
		assert.Equal(t, existing.ID.String(), id)
		assert.Equal(t, "kept", existing.Password)
	})

	t.Run("concurrent insert wins", func(t *testing.T) {
		deps := setupServiceTest(t)

		winner := &staff.Staff{ID: uuid.New(), StaffID: auth.AdminStaffID, Role: staff.RoleAdmin}
		gomock.InOrder(
			deps.repo.EXPECT().FindByStaffID(ctx, auth.AdminStaffID).Return(nil, gorm.ErrRecordNotFound),
			deps.repo.EXPECT().CreateIfAbsent(ctx, gomock.Any()).Return(false, nil),
			deps.repo.EXPECT().FindByStaffID(ctx, auth.AdminStaffID).Return(winner, nil),
		)

		id, err := deps.service.EnsureDefaultAdmin(ctx)

		require.NoError(t, err)
		assert.Equal(t, winner.ID.String(), id)
	})

	t.Run("lookup failure", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByStaffID(ctx, auth.AdminStaffID).Return(nil, errors.New("db down"))

		_, err := deps.service.EnsureDefaultAdmin(ctx)
		assert.Error(t, err)
	})
}
