package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-services/internal/dto"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/httpresp"
	useruc "github.com/BruksfildServices01/appointment-services/internal/usecase/user"
)

type AuthHandler struct {
	users *useruc.Service
}

func NewAuthHandler(users *useruc.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	sess, err := h.users.Register(c.Request.Context(), useruc.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, session(sess))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	sess, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, session(sess))
}

func session(s *useruc.Session) dto.SessionDTO {
	return dto.SessionDTO{
		User:      dto.NewUser(s.User),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
}
