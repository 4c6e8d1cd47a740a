package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kashafah/scouthub/internal/model"
)

func TestCanManageReport(t *testing.T) {
	report := &model.Report{ID: 1, CreatedBy: 7}

	// the owner manages their own report regardless of role
	assert.True(t, canManageReport(&model.User{ID: 7, Role: model.RoleMember}, report))
	assert.True(t, canManageReport(&model.User{ID: 7, Role: model.RoleLeader}, report))

	// other users need the admin role; leaders and editors are not enough
	assert.False(t, canManageReport(&model.User{ID: 8, Role: model.RoleLeader}, report))
	assert.False(t, canManageReport(&model.User{ID: 8, Role: model.RoleFullEditor}, report))
	assert.True(t, canManageReport(&model.User{ID: 8, Role: model.RoleAdmin}, report))
}
