package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-services/internal/dto"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/httpresp"
	useruc "github.com/BruksfildServices01/appointment-services/internal/usecase/user"
)

type MeHandler struct {
	users *useruc.Service
}

func NewMeHandler(users *useruc.Service) *MeHandler {
	return &MeHandler{users: users}
}

type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := actorFrom(c)

	u, err := h.users.Get(c.Request.Context(), actor, actor.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewUser(u))
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := actorFrom(c)
	u, err := h.users.Update(c.Request.Context(), actor, actor.UserID, useruc.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewUser(u))
}
