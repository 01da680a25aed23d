// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapcc/jobly/internal/config"
	"github.com/sapcc/jobly/internal/errors"
)

func TestNoopAllowsEverything(t *testing.T) {
	require.NoError(t, SetPolicyEngine("noop"))
	assert.NoError(t, Engine.Authorize("company:delete", RoleAnonymous))
	assert.NoError(t, Engine.Authorize("whatever", RoleUser))
}

func TestUnknownEngine(t *testing.T) {
	assert.Error(t, SetPolicyEngine("goslo"))
}

func TestRulesDefaults(t *testing.T) {
	config.Global.ApiSettings.PolicyFile = ""
	require.NoError(t, SetPolicyEngine("rules"))
	defer func() { Engine = noOpPolicyEngine{} }()

	assert.NoError(t, Engine.Authorize("company:list", RoleAnonymous))
	assert.NoError(t, Engine.Authorize("job:get", RoleAnonymous))
	assert.NoError(t, Engine.Authorize("job:create", RoleAdmin))

	err := Engine.Authorize("job:create", RoleAnonymous)
	assert.Equal(t, 401, errors.StatusCode(err))
	err = Engine.Authorize("company:update", RoleUser)
	assert.Equal(t, 403, errors.StatusCode(err))
	err = Engine.Authorize("company:unknown", RoleUser)
	assert.Equal(t, 403, errors.StatusCode(err))
}

func TestRulesFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(file, []byte("job:create: user\ncompany:list: admin\n"), 0o600))
	config.Global.ApiSettings.PolicyFile = file
	defer func() {
		config.Global.ApiSettings.PolicyFile = ""
		Engine = noOpPolicyEngine{}
	}()

	require.NoError(t, SetPolicyEngine("rules"))
	assert.NoError(t, Engine.Authorize("job:create", RoleUser))
	assert.Equal(t, 401, errors.StatusCode(Engine.Authorize("company:list", RoleAnonymous)))
	assert.NoError(t, Engine.Authorize("job:list", RoleAnonymous))
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]byte("job:delete: admin\njob:get: anonymous\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]Role{"job:delete": RoleAdmin, "job:get": RoleAnonymous}, rules)

	_, err = ParseRules([]byte("job:delete: root\n"))
	assert.Error(t, err)
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "admin", RoleAdmin.String())
	role, err := ParseRole("user")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)
}
