package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-services/internal/dto"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/httpresp"
	useruc "github.com/BruksfildServices01/appointment-services/internal/usecase/user"
)

// UserHandler is the admin user management surface.
type UserHandler struct {
	users *useruc.Service
}

func NewUserHandler(users *useruc.Service) *UserHandler {
	return &UserHandler{users: users}
}

type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" binding:"omitempty,oneof=client admin"`
}

type UpdateUserRequest struct {
	UpdateMeRequest
	Role *string `json:"role" binding:"omitempty,oneof=client admin"`
}

// List returns clients, filtered by name, email and registration window.
func (h *UserHandler) List(c *gin.Context) {
	page, err := h.users.ListClients(c.Request.Context(), actorFrom(c), useruc.ListClientsInput{
		Name:       c.Query("name"),
		Email:      c.Query("email"),
		DateFilter: c.Query("date_filter"),
		Page:       queryInt(c, "page"),
		Size:       queryInt(c, "size"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, dto.NewUsers(page.Items), page.Total, page.Page, page.Size)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Create(c.Request.Context(), actorFrom(c), useruc.CreateUserInput{
		RegisterInput: useruc.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
		},
		Role: req.Role,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewUser(u))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	u, err := h.users.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewUser(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Update(c.Request.Context(), actorFrom(c), id, useruc.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewUser(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
