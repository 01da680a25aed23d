// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

var Engine policy = noOpPolicyEngine{}

type Role int

const (
	RoleAnonymous Role = iota
	RoleUser
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	default:
		return "anonymous"
	}
}

// ParseRole maps the role names used in policy files.
func ParseRole(s string) (Role, error) {
	switch s {
	case "anonymous", "":
		return RoleAnonymous, nil
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	}
	return RoleAnonymous, fmt.Errorf("unknown role '%s'", s)
}

type policy interface {
	// init initializer
	init() error
	// Authorize checks whether role may execute rule.
	Authorize(rule string, role Role) error
}

func SetPolicyEngine(engine string) error {
	switch engine {
	case "rules":
		log.Info("Initializing rules policy engine")
		Engine = &rulesPolicyEngine{}
	case "noop":
		log.Info("Initializing no-op policy engine")
		Engine = noOpPolicyEngine{}
	default:
		return fmt.Errorf("policy engine '%s' not supported", engine)
	}
	return Engine.init()
}
