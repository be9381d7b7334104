package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/middleware"
)

const dateLayout = "2006-01-02"

// actorFrom reads the identity stored by the auth middleware.
func actorFrom(c *gin.Context) identity.Actor {
	id, _ := c.Get(middleware.ContextUserID)
	userID, _ := id.(uuid.UUID)
	return identity.Actor{UserID: userID, Role: c.GetString(middleware.ContextUserRole)}
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "path parameter "+name+" must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

// parseDate reads a calendar date. The error is a business error.
func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, httperr.ErrInvalidData("invalid_date", "date must use the YYYY-MM-DD format")
	}
	return t, nil
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}
