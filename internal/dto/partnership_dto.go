package dto

import "time"

type PartnershipRequest struct {
	PartnerID       string `json:"partnerId" validate:"required,uuid"`
	PartnershipType string `json:"partnershipType" validate:"required"`
}

// DirectoryQuery filters partner directories by business name, email or name.
type DirectoryQuery struct {
	Search string `form:"search" validate:"max=100"`
}

type RespondPartnershipRequest struct {
	Status string `json:"status" validate:"required"`
}

type PartnershipResponse struct {
	ID              string              `json:"id"`
	RequesterID     string              `json:"requesterId"`
	PartnerID       string              `json:"partnerId"`
	Status          string              `json:"status"`
	PartnershipType string              `json:"partnershipType"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	Requester       *PublicUserResponse `json:"requester,omitempty"`
	Partner         *PublicUserResponse `json:"partner,omitempty"`
}

type AddFavoriteRequest struct {
	FavoriteUserID string `json:"favoriteUserId" validate:"required,uuid"`
	FavoriteType   string `json:"favoriteType" validate:"required,oneof=manufacturer distributor retailer"`
}

type FavoriteResponse struct {
	ID             string              `json:"id"`
	FavoriteUserID string              `json:"favoriteUserId"`
	FavoriteType   string              `json:"favoriteType"`
	CreatedAt      time.Time           `json:"createdAt"`
	FavoriteUser   *PublicUserResponse `json:"favoriteUser,omitempty"`
}

type FavoriteCheckResponse struct {
	IsFavorite bool `json:"isFavorite"`
}
