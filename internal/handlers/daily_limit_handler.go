package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/httpresp"
	capacityuc "github.com/BruksfildServices01/appointment-services/internal/usecase/capacity"
)

type DailyLimitHandler struct {
	limits *capacityuc.Service
}

func NewDailyLimitHandler(limits *capacityuc.Service) *DailyLimitHandler {
	return &DailyLimitHandler{limits: limits}
}

type DailyLimitRequest struct {
	WeekDay string `json:"week_day" binding:"required,weekday"`
	Limit   int    `json:"limit" binding:"required,gt=0"`
}

func (r DailyLimitRequest) input() capacityuc.LimitInput {
	return capacityuc.LimitInput{WeekDay: r.WeekDay, Limit: r.Limit}
}

func (h *DailyLimitHandler) List(c *gin.Context) {
	limits, err := h.limits.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, limits)
}

func (h *DailyLimitHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	l, err := h.limits.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, l)
}

func (h *DailyLimitHandler) Create(c *gin.Context) {
	var req DailyLimitRequest
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.limits.Create(c.Request.Context(), actorFrom(c), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, l)
}

func (h *DailyLimitHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req DailyLimitRequest
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.limits.Update(c.Request.Context(), actorFrom(c), id, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, l)
}

func (h *DailyLimitHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.limits.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
