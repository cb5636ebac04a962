package dto

import "time"

type RegisterRequest struct {
	Email          string  `json:"email" validate:"required,email,max=255"`
	Password       string  `json:"password" validate:"required,min=6,max=72"`
	FirstName      string  `json:"firstName" validate:"required,max=100"`
	LastName       string  `json:"lastName" validate:"required,max=100"`
	Role           string  `json:"role" validate:"required,oneof=retailer distributor manufacturer"`
	BusinessName   *string `json:"businessName" validate:"omitempty,max=200"`
	Address        *string `json:"address" validate:"omitempty,max=500"`
	PhoneNumber    *string `json:"phoneNumber" validate:"omitempty,max=30"`
	WhatsappNumber *string `json:"whatsappNumber" validate:"omitempty,max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UpdateProfileRequest only touches the fields that are present.
type UpdateProfileRequest struct {
	FirstName       *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName        *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	BusinessName    *string `json:"businessName" validate:"omitempty,max=200"`
	Address         *string `json:"address" validate:"omitempty,max=500"`
	PhoneNumber     *string `json:"phoneNumber" validate:"omitempty,max=30"`
	WhatsappNumber  *string `json:"whatsappNumber" validate:"omitempty,max=30"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url"`
}

type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Role            string    `json:"role"`
	BusinessName    *string   `json:"businessName"`
	Address         *string   `json:"address"`
	PhoneNumber     *string   `json:"phoneNumber"`
	WhatsappNumber  *string   `json:"whatsappNumber"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PublicUserResponse is what other accounts get to see: no email, no flags.
type PublicUserResponse struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Role            string  `json:"role"`
	BusinessName    *string `json:"businessName"`
	Address         *string `json:"address"`
	PhoneNumber     *string `json:"phoneNumber"`
	WhatsappNumber  *string `json:"whatsappNumber"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int          `json:"expiresIn"`
	User         UserResponse `json:"user"`
}
