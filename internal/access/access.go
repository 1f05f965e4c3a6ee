package access

import (
	"sync"

	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/gallerynet/settlement-engine/internal/event"
	"github.com/gallerynet/settlement-engine/pkg/settle"
	"go.uber.org/zap"
)

type Role string

const (
	RoleAdmin             Role = "admin"
	RoleTransferAuthority Role = "transfer-authority"
	RoleLister            Role = "lister"
)

// Controller answers "does principal P hold role R?". Grants and revokes are
// admin-gated and recorded in the audit log.
type Controller interface {
	HasRole(role Role, principal string) bool
	RequireRole(role Role, principal string) error
	GrantRole(acting string, role Role, principal string) error
	RevokeRole(acting string, role Role, principal string) error
	GrantOnInit(role Role, principal string)
}

type controller struct {
	mu    sync.RWMutex
	roles map[string]map[Role]bool
}

// NewController seeds the given principals with the admin role.
func NewController(admins ...string) Controller {
	c := &controller{roles: map[string]map[Role]bool{}}
	for _, admin := range admins {
		c.assign(RoleAdmin, admin)
	}

	return c
}

func (c *controller) HasRole(role Role, principal string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.roles[principal][role]
}

func (c *controller) RequireRole(role Role, principal string) error {
	if !c.HasRole(role, principal) {
		zap.L().With(
			zap.String("role", string(role)),
			zap.String("principal", principal),
		).Warn("Access: Role check failed")
		return settle.ErrUnauthorized
	}

	return nil
}

func (c *controller) GrantRole(acting string, role Role, principal string) error {
	if err := c.RequireRole(RoleAdmin, acting); err != nil {
		return err
	}
	if principal == "" {
		return settle.ErrInvalidParameter
	}

	c.assign(role, principal)

	event.EmitEvent(event.RoleGrantedEvent, entity.NewAuditEvent(string(event.RoleGrantedEvent), "").
		WithPrincipal("principal", principal).
		WithPrincipal("acting", acting).
		WithPrincipal("role", string(role)))

	return nil
}

func (c *controller) RevokeRole(acting string, role Role, principal string) error {
	if err := c.RequireRole(RoleAdmin, acting); err != nil {
		return err
	}
	if principal == "" {
		return settle.ErrInvalidParameter
	}

	c.mu.Lock()
	delete(c.roles[principal], role)
	c.mu.Unlock()

	event.EmitEvent(event.RoleRevokedEvent, entity.NewAuditEvent(string(event.RoleRevokedEvent), "").
		WithPrincipal("principal", principal).
		WithPrincipal("acting", acting).
		WithPrincipal("role", string(role)))

	return nil
}

// GrantOnInit seeds a role before the system is serving callers. It bypasses
// the admin gate and the audit log and must not be used after boot.
func (c *controller) GrantOnInit(role Role, principal string) {
	c.assign(role, principal)
}

func (c *controller) assign(role Role, principal string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.roles[principal] == nil {
		c.roles[principal] = map[Role]bool{}
	}
	c.roles[principal][role] = true
}
