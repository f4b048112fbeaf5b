package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&petRecord{},
		&userRecord{},
		&adoptionRecord{},
	)
}

// Pet schema mirrors the pets Postgres adapter.
type petRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:36"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:idx_pets_name"`
	Race      string    `gorm:"column:race;not null;default:none;index"`
	Age       int       `gorm:"column:age;not null;check:chk_pets_age,age >= 0"`
	Adopted   bool      `gorm:"column:adopted;not null;default:false;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        string         `gorm:"primaryKey;column:id;size:36"`
	Name      string         `gorm:"column:name;not null"`
	CanAdopt  bool           `gorm:"column:can_adopt;not null;default:false"`
	Pets      pq.StringArray `gorm:"column:pets;type:text[];not null;default:'{}'"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Adoption schema mirrors the adoptions Postgres adapter.
type adoptionRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:36"`
	UserID    string    `gorm:"column:user_id;size:36;not null;index"`
	PetID     string    `gorm:"column:pet_id;size:36;not null;index"`
	DateTime  time.Time `gorm:"column:date_time;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (adoptionRecord) TableName() string { return "adoptions" }
