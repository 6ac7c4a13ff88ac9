package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityCanModify(t *testing.T) {
	owner := &Identity{Username: "chefjane", Role: RoleMember}
	other := &Identity{Username: "bobby", Role: RoleMember}
	admin := &Identity{Username: "admin", Role: RoleAdmin}
	var anonymous *Identity

	assert.True(t, owner.CanModify("ChefJane"))
	assert.False(t, other.CanModify("chefjane"))
	assert.True(t, admin.CanModify("chefjane"))
	assert.False(t, anonymous.CanModify("chefjane"))

	assert.True(t, admin.IsAdmin())
	assert.False(t, owner.IsAdmin())
	assert.False(t, anonymous.IsAdmin())
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "chefjane", NormalizeUsername("  ChefJane "))
}
