// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/sapcc/jobly/internal/config"
	"github.com/sapcc/jobly/internal/errors"
)

// DefaultRules lets anyone read and requires an administrator for writes.
var DefaultRules = map[string]Role{
	"company:list":   RoleAnonymous,
	"company:get":    RoleAnonymous,
	"company:create": RoleAdmin,
	"company:update": RoleAdmin,
	"company:delete": RoleAdmin,
	"job:list":       RoleAnonymous,
	"job:get":        RoleAnonymous,
	"job:create":     RoleAdmin,
	"job:update":     RoleAdmin,
	"job:delete":     RoleAdmin,
}

type rulesPolicyEngine struct {
	rules map[string]Role
}

func (p *rulesPolicyEngine) init() error {
	p.rules = make(map[string]Role, len(DefaultRules))
	for rule, role := range DefaultRules {
		p.rules[rule] = role
	}

	if config.Global.ApiSettings.PolicyFile == "" {
		return nil
	}
	buf, err := os.ReadFile(config.Global.ApiSettings.PolicyFile)
	if err != nil {
		return err
	}
	overrides, err := ParseRules(buf)
	if err != nil {
		return fmt.Errorf("policy file %s: %w", config.Global.ApiSettings.PolicyFile, err)
	}
	for rule, role := range overrides {
		p.rules[rule] = role
	}
	log.WithField("rules", len(p.rules)).Debug("Loaded policy")
	return nil
}

// Authorize returns Unauthorized for anonymous callers and Forbidden for authenticated
// callers whose role is insufficient. Unknown rules require an administrator.
func (p *rulesPolicyEngine) Authorize(rule string, role Role) error {
	required, ok := p.rules[rule]
	if !ok {
		required = RoleAdmin
	}
	if role >= required {
		return nil
	}
	if role == RoleAnonymous {
		return errors.Unauthorized()
	}
	return errors.Forbidden()
}

// ParseRules reads a YAML mapping of rule name to role name, e.g.
//
//	job:create: user
func ParseRules(buf []byte) (map[string]Role, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(buf, &raw); err != nil {
		return nil, err
	}

	rules := make(map[string]Role, len(raw))
	for rule, name := range raw {
		role, err := ParseRole(name)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule, err)
		}
		rules[rule] = role
	}
	return rules, nil
}
