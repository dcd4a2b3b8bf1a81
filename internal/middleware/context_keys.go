package middleware

import "github.com/gin-gonic/gin"

// actorKey is the key used to store the acting operator's ID in the Gin
// context. Authentication lives outside this service; the upstream gateway
// forwards the operator identity in a header.
const actorKey = contextKey("actorID")

// actorHeader is the header the upstream gateway sets.
const actorHeader = "X-Actor-ID"

// defaultActor is recorded in audit fields when no identity was forwarded.
const defaultActor = "system"

// ActorMiddleware stores the forwarded operator identity in the Gin context
// so handlers can stamp audit fields.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			actor = defaultActor
		}
		c.Set(string(actorKey), actor)
		c.Next()
	}
}

// GetActorFromContext retrieves the acting operator ID from the Gin context.
func GetActorFromContext(c *gin.Context) string {
	actorVal, exists := c.Get(string(actorKey))
	if !exists {
		return defaultActor
	}
	actor, ok := actorVal.(string)
	if !ok || actor == "" {
		return defaultActor
	}
	return actor
}
