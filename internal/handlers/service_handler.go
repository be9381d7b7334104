package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/appointment-services/internal/dto"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/httpresp"
	catalogus "github.com/BruksfildServices01/appointment-services/internal/usecase/catalog"
)

type ServiceHandler struct {
	catalog *catalogus.Service
}

func NewServiceHandler(catalog *catalogus.Service) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// Price accepts a JSON number or a decimal string.
type ServiceRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

func (r ServiceRequest) input() catalogus.ServiceInput {
	return catalogus.ServiceInput{Name: r.Name, Description: r.Description, Price: r.Price}
}

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.catalog.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewServices(services))
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewService(svc))
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.catalog.Create(c.Request.Context(), actorFrom(c), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewService(svc))
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.catalog.Update(c.Request.Context(), actorFrom(c), id, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewService(svc))
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
