package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/shared/constant"
)

func TestListingCanManage(t *testing.T) {
	listing := Listing{ID: "listing-1", HostID: "host-1"}

	t.Run("host can manage own listing", func(t *testing.T) {
		assert.True(t, listing.CanManage("host-1", constant.RoleUser))
	})

	t.Run("other user cannot manage listing", func(t *testing.T) {
		assert.False(t, listing.CanManage("user-2", constant.RoleUser))
	})

	t.Run("admin can manage any listing", func(t *testing.T) {
		assert.True(t, listing.CanManage("user-2", constant.RoleAdmin))
	})
}

func TestListingIsFound(t *testing.T) {
	t.Run("loaded listing", func(t *testing.T) {
		listing := Listing{ID: "listing-1"}
		assert.True(t, listing.IsFound())
	})

	t.Run("zero value listing", func(t *testing.T) {
		var listing Listing
		assert.False(t, listing.IsFound())
	})
}
