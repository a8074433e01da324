package v1

import (
	"clinicbook/internal/domain"
	"clinicbook/internal/middleware"
	"clinicbook/pkg/auth"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth        *AuthHandler
	Doctor      *DoctorHandler
	Appointment *AppointmentHandler
	Stats       *StatsHandler
}

// Register mounts the v1 API. Mutating doctor routes and the stats route are
// admin-gated; booking is patient-only; everything else needs any
// authenticated role.
func (h *Handlers) Register(r gin.IRouter, jwtManager *auth.JWTManager) {
	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	authed := api.Group("", middleware.Auth(jwtManager))

	doctors := authed.Group("/doctors")
	{
		doctors.GET("", h.Doctor.List)
		doctors.GET("/:id/slots", h.Doctor.OpenSlots)

		admin := doctors.Group("", middleware.RequireRole(domain.RoleAdmin))
		admin.POST("", h.Doctor.Create)
		admin.PUT("/:id", h.Doctor.Update)
		admin.DELETE("/:id", h.Doctor.Delete)
	}

	appointments := authed.Group("/appointments")
	{
		appointments.POST("", middleware.RequireRole(domain.RolePatient), h.Appointment.Book)
		appointments.POST("/:id/cancel", h.Appointment.Cancel)
		appointments.GET("", middleware.RequireRole(domain.RoleAdmin, domain.RolePatient), h.Appointment.List)
		appointments.GET("/my", middleware.RequireRole(domain.RolePatient), h.Appointment.ListOwn)
	}

	authed.GET("/stats", middleware.RequireRole(domain.RoleAdmin), h.Stats.Totals)
}
