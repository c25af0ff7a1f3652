package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Note struct {
	ID        uuid.UUID                    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID                    `gorm:"index;not null" json:"user_id"`
	User      *User                        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	SubjectID uuid.UUID                    `gorm:"index;not null" json:"subject_id"`
	Subject   *Subject                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"-"`
	Title     string                       `gorm:"not null;column:title" json:"title"`
	HTML      string                       `gorm:"type:text;column:html" json:"html"`
	JSON      string                       `gorm:"type:text;column:json" json:"json"`
	Images    datatypes.JSONSlice[string]  `gorm:"column:images" json:"images"`
	PDFURL    string                       `gorm:"column:pdf_url" json:"pdf_url"`
	IsTrashed bool                         `gorm:"not null;default:false;column:is_trashed" json:"is_trashed"`
	CreatedAt time.Time                    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time                    `gorm:"not null;default:now()" json:"updated_at"`
}

func (Note) TableName() string {
	return "note"
}
