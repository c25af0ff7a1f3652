package types

import (
	"time"

	"github.com/google/uuid"
)

type Explanation struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"index;not null" json:"user_id"`
	NoteID      uuid.UUID `gorm:"index;not null" json:"note_id"`
	Note        *Note     `gorm:"constraint:OnDelete:CASCADE;foreignKey:NoteID;references:ID" json:"-"`
	Explanation string    `gorm:"type:text;not null;column:explanation" json:"explanation"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Explanation) TableName() string {
	return "explanation"
}
