package session

import (
	"github.com/gin-gonic/gin"

	model "blogicum/internal/domain/models"
)

const (
	ContextActorKey     = "actor"
	ContextCSRFTokenKey = "csrf_token"
)

func SetActor(c *gin.Context, actor model.Actor) {
	c.Set(ContextActorKey, actor)
}

// Actor returns the anonymous actor when the auth middleware did not run.
func Actor(c *gin.Context) model.Actor {
	v, ok := c.Get(ContextActorKey)
	if !ok {
		return model.Anonymous()
	}
	actor, ok := v.(model.Actor)
	if !ok {
		return model.Anonymous()
	}
	return actor
}

func SetCSRFToken(c *gin.Context, token string) {
	c.Set(ContextCSRFTokenKey, token)
}

func CSRFToken(c *gin.Context) string {
	return c.GetString(ContextCSRFTokenKey)
}
