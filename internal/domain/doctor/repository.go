package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error

	// GetByID returns ErrDoctorNotFound when the id does not resolve.
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)

	// GetByIDs fetches a batch keyed by id; missing ids are absent from the map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Doctor, error)

	Update(ctx context.Context, id uuid.UUID, cmd *UpdateDoctorCommand) (*Doctor, error)

	// Delete removes the doctor record. Existing appointments are not
	// cascade-deleted and may keep an orphaned doctor reference.
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, q *ListDoctorsQuery) ([]*Doctor, error)

	Count(ctx context.Context) (int64, error)
}
