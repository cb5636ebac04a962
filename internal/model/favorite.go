package model

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a bookmark user → favoriteUser, independent of partnerships.
type Favorite struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_favorite"`
	FavoriteUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_favorite"`
	FavoriteType   Role      `gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time

	FavoriteUser *User `gorm:"foreignKey:FavoriteUserID"`
}
