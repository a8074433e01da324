package v1

import (
	"errors"
	"time"

	"clinicbook/internal/domain/appointment"
	"clinicbook/internal/domain/doctor"
	"clinicbook/internal/middleware"
	"clinicbook/internal/service"
	"clinicbook/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
	m   *metrics.Collector
}

func NewAppointmentHandler(svc *service.AppointmentService, m *metrics.Collector) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, m: m}
}

type bookRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req bookRequest
	if !bindJSON(c, &req) {
		return
	}

	claims := middleware.ClaimsFrom(c)
	a, err := h.svc.Book(c.Request.Context(), &appointment.BookAppointmentCommand{
		DoctorID:    req.DoctorID,
		PatientID:   claims.UserID,
		ScheduledAt: req.Date,
	}, c.ClientIP())
	if err != nil {
		h.m.BookingsTotal.WithLabelValues(bookingOutcome(err)).Inc()
		respondBookingError(c, err)
		return
	}

	h.m.BookingsTotal.WithLabelValues("booked").Inc()
	respondCreated(c, a)
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, doctor.ErrDoctorNotFound):
		return "doctor_not_found"
	case errors.Is(err, appointment.ErrSlotAlreadyBooked):
		return "slot_conflict"
	case errors.Is(err, appointment.ErrPatientTimeConflict):
		return "patient_conflict"
	default:
		return "error"
	}
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	claims := middleware.ClaimsFrom(c)
	a, err := h.svc.Cancel(c.Request.Context(), id, claims, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.m.CancellationsTotal.Inc()
	respondOK(c, a)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	views, err := h.svc.List(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, views)
}

func (h *AppointmentHandler) ListOwn(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	views, err := h.svc.ListOwn(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, views)
}
