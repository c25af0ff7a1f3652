package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuizAttempt struct {
	ID        uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID                   `gorm:"index;not null" json:"user_id"`
	QuizID    uuid.UUID                   `gorm:"index;not null" json:"quiz_id"`
	Quiz      *Quiz                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"-"`
	Answers   datatypes.JSONSlice[string] `gorm:"column:answers" json:"answers"`
	Score     int                         `gorm:"not null;column:score" json:"score"`
	Total     int                         `gorm:"not null;column:total" json:"total"`
	CreatedAt time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"not null;default:now()" json:"updated_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempt"
}
