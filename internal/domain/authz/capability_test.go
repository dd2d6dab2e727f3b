package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilityNames(t *testing.T) {
	assert.Len(t, AllCapabilities(), 13)

	for _, c := range AllCapabilities() {
		back, ok := CapabilityByName(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, back)
	}

	_, ok := CapabilityByName("can_fly")
	assert.False(t, ok)
}

func TestCapabilitySet(t *testing.T) {
	s := NewCapabilitySet(EditProduct)
	assert.False(t, s.HasAnyCoarse())
	assert.True(t, s.Has(EditProduct))
	assert.False(t, s.Has(0))

	s = s.With(ManageContent)
	assert.True(t, s.HasAnyCoarse())
	assert.Equal(t, []string{"can_manage_content", "can_edit_product"}, s.Names())
	assert.True(t, ManageContent.IsCoarse())
	assert.False(t, EditProduct.IsCoarse())
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("Admin"))
	assert.Equal(t, RoleModerator, ParseRole("moderator"))
	assert.Equal(t, RoleCustomer, ParseRole(""))
	assert.Equal(t, RoleCustomer, ParseRole("superuser"))
}
