package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locart/models"
)

// Capabilities checked at the routing boundary before the engine is invoked.
const (
	CapManageBookings = "manage_bookings"
	CapBookOnline     = "book_online"
	CapManageStylists = "manage_stylists"
)

// roleCapabilities is the closed role-to-capability mapping.
var roleCapabilities = map[string]map[string]bool{
	models.RoleMerchant: {
		CapManageBookings: true,
		CapManageStylists: true,
	},
	models.RoleStylist: {
		CapManageBookings: true,
	},
	models.RoleCustomer: {
		CapBookOnline: true,
	},
}

// HasCapability reports whether the role grants the capability.
func HasCapability(role, capability string) bool {
	return roleCapabilities[role][capability]
}

// RequireCapability gates a route on the caller's role. It must run after
// JWTAuthMiddleware.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if !HasCapability(role, capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
