package rbac

import (
	"sort"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	PermissionsFor(role string) ([]Permission, error)
}

type service struct {
	enforcer *casbin.SyncedEnforcer
	logger   *zap.Logger
}

// NewService loads permissions and inheritance into enforcer. The policy is
// read-only afterwards.
func NewService(
	enforcer *casbin.SyncedEnforcer,
	permissions []Permission,
	inheritance []RoleInheritance,
	logger ...*zap.Logger,
) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	enforcer.ClearPolicy()

	for _, p := range permissions {
		if _, err := enforcer.AddPolicy(p.Role, p.Resource, p.Action); err != nil {
			return nil, err
		}
	}
	for _, g := range inheritance {
		if _, err := enforcer.AddGroupingPolicy(g.Member, g.Parent); err != nil {
			return nil, err
		}
	}

	l.Info("rbac policy loaded",
		zap.Int("permissions", len(permissions)),
		zap.Int("inheritance", len(inheritance)),
	)

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// PermissionsFor lists the direct and inherited permissions of role, sorted
// by resource then action.
func (s *service) PermissionsFor(role string) ([]Permission, error) {
	rules, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return nil, err
	}

	perms := make([]Permission, 0, len(rules))
	for _, r := range rules {
		if len(r) < 3 {
			continue
		}
		perms = append(perms, Permission{Role: role, Resource: r[1], Action: r[2]})
	}

	sort.Slice(perms, func(i, j int) bool {
		if perms[i].Resource != perms[j].Resource {
			return perms[i].Resource < perms[j].Resource
		}
		return perms[i].Action < perms[j].Action
	})
	return perms, nil
}
