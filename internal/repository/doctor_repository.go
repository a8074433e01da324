package repository

import (
	"context"

	"clinicbook/internal/domain/doctor"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) Create(ctx context.Context, d *doctor.Doctor) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, doctor.ErrDoctorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*doctor.Doctor, error) {
	out := make(map[uuid.UUID]*doctor.Doctor, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var doctors []*doctor.Doctor
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&doctors).Error; err != nil {
		return nil, err
	}
	for _, d := range doctors {
		out[d.ID] = d
	}
	return out, nil
}

func (r *DoctorRepository) Update(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		d.Name = *cmd.Name
	}
	if cmd.Specialization != nil {
		d.Specialization = *cmd.Specialization
	}
	if cmd.Availability != nil {
		d.Availability = cmd.Availability
	}

	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DoctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&doctor.Doctor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return doctor.ErrDoctorNotFound
	}
	return nil
}

func (r *DoctorRepository) List(ctx context.Context, q *doctor.ListDoctorsQuery) ([]*doctor.Doctor, error) {
	tx := r.db.WithContext(ctx).Model(&doctor.Doctor{})
	if q != nil && q.Specialization != nil {
		tx = tx.Where("specialization = ?", *q.Specialization)
	}

	var out []*doctor.Doctor
	if err := tx.Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DoctorRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&doctor.Doctor{}).Count(&n).Error
	return n, err
}
