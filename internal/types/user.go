package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email                string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password             string     `gorm:"not null;column:password" json:"-"`
	Username             string     `gorm:"not null;column:username" json:"username"`
	ImageURL             string     `gorm:"column:image_url" json:"image_url"`
	ResetPasswordToken   string     `gorm:"index;column:reset_password_token" json:"-"`
	ResetPasswordExpires *time.Time `gorm:"column:reset_password_expires" json:"-"`
	CreatedAt            time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
