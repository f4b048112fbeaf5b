package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists adoption records in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type adoptionRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:36"`
	UserID    string    `gorm:"column:user_id"`
	PetID     string    `gorm:"column:pet_id"`
	DateTime  time.Time `gorm:"column:date_time"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (adoptionRecord) TableName() string { return "adoptions" }

func (r *Repository) Insert(ctx context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if adoption == nil {
		return nil, errors.New("adoption is nil")
	}
	record := adoptionRecord{
		ID:       adoption.ID,
		UserID:   adoption.UserID,
		PetID:    adoption.PetID,
		DateTime: adoption.DateTime,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		return record.toProjection(), nil
	}
	existing, err := r.GetByID(ctx, adoption.ID)
	if err != nil {
		return nil, err
	}
	if !existing.Entity.SameLink(adoption) {
		return nil, ports.ErrIDTaken
	}
	return existing, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Adoption], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record adoptionRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&adoptionRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Adoption], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []adoptionRecord
	if err := r.db.WithContext(ctx).Order("date_time").Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Adoption], 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func (r *Repository) ListByPet(ctx context.Context, petID string) ([]*projection.Projection[*domain.Adoption], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []adoptionRecord
	if err := r.db.WithContext(ctx).Where("pet_id = ?", petID).Order("date_time").Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Adoption], 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres adoption repository not configured")
	}
	return nil
}

func (r adoptionRecord) toProjection() *projection.Projection[*domain.Adoption] {
	return projection.New(&domain.Adoption{
		ID:       r.ID,
		UserID:   r.UserID,
		PetID:    r.PetID,
		DateTime: r.DateTime.UTC(),
	}, r.CreatedAt, r.UpdatedAt)
}
