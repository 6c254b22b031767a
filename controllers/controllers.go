// Package controllers holds the thin HTTP handlers: they parse requests,
// call into the stores and render the response envelope. No business
// rules live here.
package controllers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/karimelhadi/atelierbackend/models"
)

// actorFromContext rebuilds the authenticated identity the auth
// middleware stored on the request.
func actorFromContext(c *gin.Context) (models.Actor, bool) {
	userID, _ := c.Get("userID")
	email, _ := c.Get("email")
	role, _ := c.Get("role")

	idStr, ok := userID.(string)
	if !ok {
		return models.Actor{}, false
	}
	oid, err := bson.ObjectIDFromHex(idStr)
	if err != nil {
		return models.Actor{}, false
	}

	actor := models.Actor{ID: oid}
	if e, ok := email.(string); ok {
		actor.Email = e
	}
	if r, ok := role.(string); ok {
		actor.Role = models.Role(r)
	}
	return actor, true
}
