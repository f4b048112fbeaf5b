package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID        string         `gorm:"primaryKey;column:id;size:36"`
	Name      string         `gorm:"column:name"`
	CanAdopt  bool           `gorm:"column:can_adopt"`
	Pets      pq.StringArray `gorm:"column:pets;type:text[]"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

func (r *Repository) Create(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toProjection(), nil
}

// Save updates name and canAdopt. The pets column is left to AttachPet and DetachPet.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	result := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":       user.Name,
			"can_adopt":  user.CanAdopt,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, user.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
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
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("created_at").Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.User], 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

// AttachPet appends the reference in a single conditional statement.
func (r *Repository) AttachPet(ctx context.Context, userID, petID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ? AND NOT (?::text = ANY(pets))", userID, petID).
		Updates(map[string]any{
			"pets":       gorm.Expr("array_append(pets, ?::text)", petID),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}
	return r.missOrConflict(ctx, userID, ports.ErrPetAlreadyAttached)
}

func (r *Repository) DetachPet(ctx context.Context, userID, petID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ? AND ?::text = ANY(pets)", userID, petID).
		Updates(map[string]any{
			"pets":       gorm.Expr("array_remove(pets, ?::text)", petID),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}
	return r.missOrConflict(ctx, userID, ports.ErrPetNotAttached)
}

func (r *Repository) missOrConflict(ctx context.Context, userID string, conflict error) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrNotFound
	}
	return conflict
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	pets := pq.StringArray(append([]string{}, user.Pets...))
	return userRecord{
		ID:       user.ID,
		Name:     user.Name,
		CanAdopt: user.CanAdopt,
		Pets:     pets,
	}
}

func (r userRecord) toProjection() *projection.Projection[*domain.User] {
	pets := append([]string{}, r.Pets...)
	return projection.New(&domain.User{
		ID:       r.ID,
		Name:     r.Name,
		CanAdopt: r.CanAdopt,
		Pets:     pets,
	}, r.CreatedAt, r.UpdatedAt)
}
