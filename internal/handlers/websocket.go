package handlers

import (
	"crypto/subtle"

	"github.com/chachabrian/pawcare-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler subscribes a client to live booking updates. Customers
// (?email=) see their own bookings; the email is taken as given since there
// is no login. Staff (?role=staff) see every booking and must present the
// shared staffToken as ?token= or an X-Staff-Token header. Staff
// subscriptions are refused while staffToken is empty.
func WebSocketHandler(hub *services.Hub, staffToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		role := c.DefaultQuery("role", services.RoleCustomer)

		switch role {
		case services.RoleStaff:
			if staffToken == "" {
				c.JSON(403, gin.H{"message": "Staff subscriptions are disabled"})
				return
			}
			token := c.Query("token")
			if token == "" {
				token = c.GetHeader("X-Staff-Token")
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(staffToken)) != 1 {
				c.JSON(401, gin.H{"message": "Invalid staff token"})
				return
			}
		case services.RoleCustomer:
			if email == "" {
				c.JSON(400, gin.H{"message": "Email is required", "missingFields": []string{"email"}})
				return
			}
		default:
			c.JSON(400, gin.H{"message": "role must be staff or customer"})
			return
		}

		services.HandleWebSocket(hub, c.Writer, c.Request, email, role)
	}
}
