package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	platformpostgres "github.com/Apurer/go-gin-adoption-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets in PostgreSQL using GORM. Schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type petRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:36"`
	Name      string    `gorm:"column:name"`
	Race      string    `gorm:"column:race"`
	Age       int       `gorm:"column:age"`
	Adopted   bool      `gorm:"column:adopted"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Create inserts a new pet.
func (r *Repository) Create(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	record := toRecord(pet)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if platformpostgres.IsUniqueViolation(err) {
			return nil, ports.ErrDuplicateName
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Update writes name, race and age for an existing pet.
func (r *Repository) Update(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	result := r.db.WithContext(ctx).
		Model(&petRecord{}).
		Where("id = ?", pet.ID).
		Updates(map[string]any{
			"name":       pet.Name,
			"race":       pet.Race,
			"age":        pet.Age,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		if platformpostgres.IsUniqueViolation(result.Error) {
			return nil, ports.ErrDuplicateName
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, pet.ID)
}

// GetByID fetches a pet by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Delete removes a pet by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&petRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Find translates the query into SQL predicates, ordering and paging.
func (r *Repository) Find(ctx context.Context, query domain.Query) ([]*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	tx := r.db.WithContext(ctx).Model(&petRecord{})
	tx = applyStringFilter(tx, "name", query.Filter.Name)
	tx = applyStringFilter(tx, "race", query.Filter.Race)
	tx = applyIntFilter(tx, "age", query.Filter.Age)
	if query.Filter.Adopted != nil {
		tx = tx.Where("adopted = ?", *query.Filter.Adopted)
	}
	keys := query.Sort
	if len(keys) == 0 {
		keys = []domain.SortKey{{Field: domain.SortByName}}
	}
	for _, key := range keys {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: string(key.Field)}, Desc: key.Descending})
	}
	tx = tx.Order("id")
	if query.Page.Limit > 0 {
		tx = tx.Limit(query.Page.Limit)
	}
	if query.Page.Offset > 0 {
		tx = tx.Offset(query.Page.Offset)
	}
	var records []petRecord
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Pet], 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

// FindByIDs loads the listed pets and returns them in the order of ids.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) ([]*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*petRecord, len(records))
	for i := range records {
		byID[records[i].ID] = &records[i]
	}
	result := make([]*projection.Projection[*domain.Pet], 0, len(records))
	for _, id := range ids {
		if record, ok := byID[id]; ok {
			result = append(result, record.toProjection())
		}
	}
	return result, nil
}

// SetAdopted performs a conditional update predicated on the opposite flag value.
func (r *Repository) SetAdopted(ctx context.Context, id string, adopted bool) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&petRecord{}).
		Where("id = ? AND adopted = ?", id, !adopted).
		Updates(map[string]any{"adopted": adopted, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&petRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrNotFound
	}
	return ports.ErrStaleAdoptionState
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres pet repository not configured")
	}
	return nil
}

func applyStringFilter(tx *gorm.DB, column string, f *domain.StringFilter) *gorm.DB {
	if f == nil {
		return tx
	}
	if f.Eq != nil {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: column}, Value: *f.Eq})
	}
	if f.Ne != nil {
		tx = tx.Where(clause.Neq{Column: clause.Column{Name: column}, Value: *f.Ne})
	}
	if f.Contains != nil {
		tx = tx.Where(column+" ILIKE ?", "%"+likeEscaper.Replace(*f.Contains)+"%")
	}
	if f.NotContains != nil {
		tx = tx.Where(column+" NOT ILIKE ?", "%"+likeEscaper.Replace(*f.NotContains)+"%")
	}
	return tx
}

func applyIntFilter(tx *gorm.DB, column string, f *domain.IntFilter) *gorm.DB {
	if f == nil {
		return tx
	}
	col := clause.Column{Name: column}
	if f.Eq != nil {
		tx = tx.Where(clause.Eq{Column: col, Value: *f.Eq})
	}
	if f.Ne != nil {
		tx = tx.Where(clause.Neq{Column: col, Value: *f.Ne})
	}
	if f.Gt != nil {
		tx = tx.Where(clause.Gt{Column: col, Value: *f.Gt})
	}
	if f.Gte != nil {
		tx = tx.Where(clause.Gte{Column: col, Value: *f.Gte})
	}
	if f.Lt != nil {
		tx = tx.Where(clause.Lt{Column: col, Value: *f.Lt})
	}
	if f.Lte != nil {
		tx = tx.Where(clause.Lte{Column: col, Value: *f.Lte})
	}
	return tx
}

func toRecord(pet *domain.Pet) petRecord {
	return petRecord{
		ID:      pet.ID,
		Name:    pet.Name,
		Race:    pet.Race,
		Age:     pet.Age,
		Adopted: pet.Adopted,
	}
}

func (r petRecord) toProjection() *projection.Projection[*domain.Pet] {
	return projection.New(&domain.Pet{
		ID:      r.ID,
		Name:    r.Name,
		Race:    r.Race,
		Age:     r.Age,
		Adopted: r.Adopted,
	}, r.CreatedAt, r.UpdatedAt)
}
