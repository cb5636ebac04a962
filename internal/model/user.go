package model

import (
	"time"

	"github.com/google/uuid"
)

// User is any account of the platform. Email is the login identifier.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email           string    `gorm:"uniqueIndex;not null"`
	PasswordHash    string    `gorm:"not null"`
	FirstName       string    `gorm:"not null"`
	LastName        string    `gorm:"not null"`
	Role            Role      `gorm:"type:varchar(20);index;not null"`
	BusinessName    *string
	Address         *string
	PhoneNumber     *string
	WhatsappNumber  *string
	ProfileImageURL *string `gorm:"column:profile_image_url"`
	IsActive        bool    `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayName is the business name when set, the first name otherwise.
func (u *User) DisplayName() string {
	if u.BusinessName != nil && *u.BusinessName != "" {
		return *u.BusinessName
	}
	return u.FirstName
}
