package doctor

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"-"`

	Name           string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Specialization string `gorm:"column:specialization;type:varchar(100);not null;index" json:"specialization"`

	// Weekly recurring template. One entry per weekday the doctor works;
	// days with no slots are dropped before persistence.
	Availability []DaySchedule `gorm:"column:availability;serializer:json" json:"availability"`

	// Audit: which admin created this record
	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null" json:"-"`
}

func (Doctor) TableName() string {
	return "clinical.doctors"
}

// DaySlots returns the slot list for the given weekday label (first match,
// nil when the doctor does not work that day).
func (d *Doctor) DaySlots(day string) []string {
	for _, ds := range d.Availability {
		if ds.Day == day {
			return ds.Slots
		}
	}
	return nil
}

type CreateDoctorCommand struct {
	Name           string
	Specialization string
	Availability   []DaySchedule
	CreatedBy      uuid.UUID
}

type UpdateDoctorCommand struct {
	Name           *string
	Specialization *string
	Availability   []DaySchedule
	UpdatedBy      uuid.UUID
}

type ListDoctorsQuery struct {
	Specialization *string
}
