package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizQuestion is one multiple-choice question as produced by the model:
// four options, with the correct answer drawn from those options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type Quiz struct {
	ID        uuid.UUID                           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID                           `gorm:"index;not null" json:"user_id"`
	NoteID    uuid.UUID                           `gorm:"index;not null" json:"note_id"`
	Note      *Note                               `gorm:"constraint:OnDelete:CASCADE;foreignKey:NoteID;references:ID" json:"-"`
	Questions datatypes.JSONType[[]QuizQuestion]  `gorm:"column:questions" json:"questions"`
	CreatedAt time.Time                           `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time                           `gorm:"not null;default:now()" json:"updated_at"`
}

func (Quiz) TableName() string {
	return "quiz"
}
