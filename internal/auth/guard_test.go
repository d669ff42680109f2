package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reviewhub/reviewhub-api/internal/model"
)

func TestCanAdministerCollection(t *testing.T) {
	assert.False(t, CanAdministerCollection(nil))
	assert.False(t, CanAdministerCollection(&model.Account{ID: 1, Role: model.RoleUser}))
	assert.False(t, CanAdministerCollection(&model.Account{ID: 1, Role: model.RoleModerator}))
	assert.True(t, CanAdministerCollection(&model.Account{ID: 1, Role: model.RoleAdmin}))

	// Staff and superuser flags grant admin authority regardless of role.
	assert.True(t, CanAdministerCollection(&model.Account{ID: 1, Role: model.RoleUser, IsStaff: true}))
	assert.True(t, CanAdministerCollection(&model.Account{ID: 1, Role: model.RoleUser, IsSuperuser: true}))
}

func TestCanModifyObject(t *testing.T) {
	const authorID = 7

	assert.False(t, CanModifyObject(nil, authorID))
	assert.True(t, CanModifyObject(&model.Account{ID: authorID, Role: model.RoleUser}, authorID))
	assert.False(t, CanModifyObject(&model.Account{ID: 8, Role: model.RoleUser}, authorID))
	assert.True(t, CanModifyObject(&model.Account{ID: 8, Role: model.RoleModerator}, authorID))
	assert.True(t, CanModifyObject(&model.Account{ID: 8, Role: model.RoleAdmin}, authorID))
}

func TestCanUpdateProfile(t *testing.T) {
	assert.False(t, CanUpdateProfile(nil, 7))
	assert.True(t, CanUpdateProfile(&model.Account{ID: 7, Role: model.RoleUser}, 7))
	assert.False(t, CanUpdateProfile(&model.Account{ID: 8, Role: model.RoleUser}, 7))
	// Moderators are not profile admins.
	assert.False(t, CanUpdateProfile(&model.Account{ID: 8, Role: model.RoleModerator}, 7))
	assert.True(t, CanUpdateProfile(&model.Account{ID: 8, Role: model.RoleAdmin}, 7))
}
