package permission

import (
	"fmt"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"cabinet/internal/domain/cabinet"
	"cabinet/internal/shared/logger"
)

var _ cabinet.PolicyEnforcer = (*Enforcer)(nil)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Enforcer evaluates cabinet role policies loaded from configuration lines
// of the form "p, <role>, <resource>, <action>".
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(policies []string, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	for _, line := range policies {
		rule, err := parsePolicyLine(line)
		if err != nil {
			return nil, err
		}
		if _, err := enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
			return nil, fmt.Errorf("failed to add policy %q: %w", line, err)
		}
	}

	log.Infow("permission policies loaded", "count", len(policies))

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func parsePolicyLine(line string) ([]string, error) {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) != 4 || parts[0] != "p" {
		return nil, fmt.Errorf("invalid policy line %q: expected \"p, role, resource, action\"", line)
	}
	for _, p := range parts[1:] {
		if p == "" {
			return nil, fmt.Errorf("invalid policy line %q: empty field", line)
		}
	}
	return parts[1:], nil
}

func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// AddPolicy grants action on resource to role at runtime. Not persisted.
func (e *Enforcer) AddPolicy(role, resource, action string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPolicy(role, resource, action); err != nil {
		e.logger.Errorw("failed to add policy", "error", err)
		return fmt.Errorf("failed to add policy: %w", err)
	}
	return nil
}
