package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/dto"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/httpresp"
	"github.com/BruksfildServices01/appointment-services/internal/models"
	appointmentuc "github.com/BruksfildServices01/appointment-services/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Create   *appointmentuc.CreateAppointment
	Get      *appointmentuc.GetAppointment
	Update   *appointmentuc.UpdateAppointment
	Cancel   *appointmentuc.CancelAppointment
	Confirm  *appointmentuc.ConfirmAppointment
	Complete *appointmentuc.CompleteAppointment
	Delete   *appointmentuc.DeleteAppointment
	List     *appointmentuc.ListAppointments
}

type AppointmentHandler struct {
	uc AppointmentUseCases
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Date             string      `json:"date" binding:"required"`
	Services         []uuid.UUID `json:"services"`
	PreferredAdminID *uuid.UUID  `json:"preferred_admin_id"`
}

// UpdateAppointmentRequest: an absent field is left untouched.
type UpdateAppointmentRequest struct {
	Date     *string     `json:"date"`
	Services []uuid.UUID `json:"services"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"cancel_reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), actorFrom(c), appointmentuc.CreateAppointmentInput{
		Date:             date,
		ServiceIDs:       req.Services,
		PreferredAdminID: req.PreferredAdminID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointment(ap))
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointment(ap))
}

func (h *AppointmentHandler) List(c *gin.Context) {
	page, err := h.uc.List.Execute(c.Request.Context(), actorFrom(c), appointmentuc.ListAppointmentsInput{
		Page:       queryInt(c, "page"),
		Size:       queryInt(c, "size"),
		Status:     c.Query("status"),
		DateFilter: c.Query("date_filter"),
		Unassigned: c.Query("unassigned") == "true",
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, dto.NewAppointments(page.Items), page.Total, page.Page, page.Size)
}

// ======================================================
// CLIENT CHANGES
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	in := appointmentuc.UpdateAppointmentInput{ServiceIDs: req.Services}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		in.Date = &date
	}

	ap, err := h.uc.Update.Execute(c.Request.Context(), actorFrom(c), id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointment(ap))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// the body is optional
	var req CancelAppointmentRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Cancel.Execute(c.Request.Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointment(ap))
}

// ======================================================
// ADMIN ACTIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.uc.Confirm.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.uc.Complete.Execute)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

type transitionFunc = func(
	ctx context.Context,
	actor identity.Actor,
	id uuid.UUID,
) (*models.Appointment, error)

func (h *AppointmentHandler) transition(c *gin.Context, run transitionFunc) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := run(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointment(ap))
}
