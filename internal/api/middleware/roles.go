package middleware

import (
	"net/http"

	"school-api/internal/domain/school"

	"github.com/gin-gonic/gin"
)

// RoleHeader names the caller's group, as provisioned by the identity layer
// in front of this service. Group names arrive in several spellings and
// languages and are normalized by school.ResolveRole.
const RoleHeader = "X-Role"

const roleContextKey = "resolved_role"

// ResolveRole normalizes the role header into the request context. Requests
// without a recognizable role proceed as RoleUnknown; enforcement happens in
// RequireRole.
func ResolveRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := school.ResolveRole(c.GetHeader(RoleHeader))
		c.Set(roleContextKey, role)
		c.Next()
	}
}

// RoleFromContext returns the role ResolveRole stored for this request.
func RoleFromContext(c *gin.Context) school.Role {
	if value, ok := c.Get(roleContextKey); ok {
		if role, ok := value.(school.Role); ok {
			return role
		}
	}
	return school.RoleUnknown
}

// RequireRole rejects the request unless the resolved role is one of the
// allowed ones.
func RequireRole(allowed ...school.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := RoleFromContext(c)
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "insufficient role for this operation",
		})
	}
}
