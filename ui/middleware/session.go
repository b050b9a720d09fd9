package middleware

import (
	"launchdash/app"
	"launchdash/internal/errors"
	"launchdash/internal/session"

	"github.com/gin-gonic/gin"
)

const controllerKey = "dashboard.controller"

// EnsureSession attaches the browser's dashboard controller to the request,
// starting a session when the cookie is missing or stale
func EnsureSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(controllerKey, store.FromRequest(c.Writer, c.Request))
		c.Next()
	}
}

// RequireSession attaches the controller of an existing session and aborts with
// NOT_FOUND otherwise
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		controller, err := store.Lookup(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(errors.HTTPStatus(err), gin.H{
				"error": err.Error(),
				"code":  errors.GetCode(err),
			})
			return
		}
		c.Set(controllerKey, controller)
		c.Next()
	}
}

// Controller returns the controller attached by EnsureSession or RequireSession
func Controller(c *gin.Context) *app.Controller {
	v, ok := c.Get(controllerKey)
	if !ok {
		return nil
	}
	controller, _ := v.(*app.Controller)
	return controller
}
