package v1

import (
	"net/http"
	"time"

	"clinicbook/internal/domain/doctor"
	"clinicbook/internal/middleware"
	"clinicbook/internal/service"
	"clinicbook/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	svc *service.DoctorService
	m   *metrics.Collector
}

func NewDoctorHandler(svc *service.DoctorService, m *metrics.Collector) *DoctorHandler {
	return &DoctorHandler{svc: svc, m: m}
}

type dayScheduleRequest struct {
	Day   string   `json:"day" binding:"required,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	Slots []string `json:"slots" binding:"dive,hhmm"`
}

type createDoctorRequest struct {
	Name           string               `json:"name" binding:"required,max=100"`
	Specialization string               `json:"specialization" binding:"required,max=100"`
	Availability   []dayScheduleRequest `json:"availability" binding:"dive"`
}

type updateDoctorRequest struct {
	Name           *string              `json:"name" binding:"omitempty,max=100"`
	Specialization *string              `json:"specialization" binding:"omitempty,max=100"`
	Availability   []dayScheduleRequest `json:"availability" binding:"omitempty,dive"`
}

func toAvailability(in []dayScheduleRequest) []doctor.DaySchedule {
	if in == nil {
		return nil
	}
	out := make([]doctor.DaySchedule, len(in))
	for i, ds := range in {
		out[i] = doctor.DaySchedule{Day: ds.Day, Slots: ds.Slots}
	}
	return out
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req createDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	claims := middleware.ClaimsFrom(c)
	d, err := h.svc.Create(c.Request.Context(), &doctor.CreateDoctorCommand{
		Name:           req.Name,
		Specialization: req.Specialization,
		Availability:   toAvailability(req.Availability),
		CreatedBy:      claims.UserID,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.m.DoctorsCreated.Inc()
	respondCreated(c, d)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	claims := middleware.ClaimsFrom(c)
	d, err := h.svc.Update(c.Request.Context(), id, &doctor.UpdateDoctorCommand{
		Name:           req.Name,
		Specialization: req.Specialization,
		Availability:   toAvailability(req.Availability),
		UpdatedBy:      claims.UserID,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, d)
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	claims := middleware.ClaimsFrom(c)
	if err := h.svc.Delete(c.Request.Context(), id, claims.UserID, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": id})
}

func (h *DoctorHandler) List(c *gin.Context) {
	q := &doctor.ListDoctorsQuery{}
	if spec := c.Query("specialization"); spec != "" {
		q.Specialization = &spec
	}

	doctors, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, doctors)
}

// OpenSlots serves the availability resolver: template slots on the given
// date not yet taken by a booked appointment.
func (h *DoctorHandler) OpenSlots(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date: want YYYY-MM-DD"})
		return
	}

	slots, err := h.svc.OpenSlots(c.Request.Context(), id, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}

	respondOK(c, gin.H{"date": c.Query("date"), "slots": slots})
}
