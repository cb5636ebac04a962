package service

import (
	"context"
	"errors"

	"auromart/internal/apierror"
	"auromart/internal/dto"
	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteService interface {
	List(ctx context.Context, userID uuid.UUID) ([]dto.FavoriteResponse, error)
	Add(ctx context.Context, userID uuid.UUID, req dto.AddFavoriteRequest) (*dto.FavoriteResponse, error)
	Remove(ctx context.Context, userID, favoriteUserID uuid.UUID) error
	Check(ctx context.Context, userID, favoriteUserID uuid.UUID) (*dto.FavoriteCheckResponse, error)
}

type favoriteService struct {
	repo  repository.FavoriteRepository
	users repository.UserRepository
}

func NewFavoriteService(repo repository.FavoriteRepository, users repository.UserRepository) FavoriteService {
	return &favoriteService{repo: repo, users: users}
}

func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]dto.FavoriteResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FavoriteResponse, len(rows))
	for i := range rows {
		out[i] = favoriteToResponse(&rows[i])
	}
	return out, nil
}

func (s *favoriteService) Add(ctx context.Context, userID uuid.UUID, req dto.AddFavoriteRequest) (*dto.FavoriteResponse, error) {
	favID, err := parseID(req.FavoriteUserID, "favoriteUserId")
	if err != nil {
		return nil, err
	}
	if favID == userID {
		return nil, apierror.Validation("cannot favorite yourself")
	}
	kind := model.Role(req.FavoriteType)
	if !kind.IsBusiness() {
		return nil, apierror.Validation("favoriteType must be manufacturer, distributor or retailer")
	}
	target, err := s.users.FindByID(ctx, favID)
	if err != nil {
		return nil, lookupErr(err, "user")
	}

	exists, err := s.repo.Exists(ctx, userID, favID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierror.Conflict("user is already a favorite")
	}

	fav := model.Favorite{UserID: userID, FavoriteUserID: favID, FavoriteType: kind}
	if err := s.repo.Create(ctx, &fav); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("user is already a favorite")
		}
		return nil, err
	}
	fav.FavoriteUser = target
	resp := favoriteToResponse(&fav)
	return &resp, nil
}

func (s *favoriteService) Remove(ctx context.Context, userID, favoriteUserID uuid.UUID) error {
	n, err := s.repo.Delete(ctx, userID, favoriteUserID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierror.NotFound("favorite not found")
	}
	return nil
}

func (s *favoriteService) Check(ctx context.Context, userID, favoriteUserID uuid.UUID) (*dto.FavoriteCheckResponse, error) {
	ok, err := s.repo.Exists(ctx, userID, favoriteUserID)
	if err != nil {
		return nil, err
	}
	return &dto.FavoriteCheckResponse{IsFavorite: ok}, nil
}

func favoriteToResponse(f *model.Favorite) dto.FavoriteResponse {
	return dto.FavoriteResponse{
		ID:             f.ID.String(),
		FavoriteUserID: f.FavoriteUserID.String(),
		FavoriteType:   string(f.FavoriteType),
		CreatedAt:      f.CreatedAt,
		FavoriteUser:   userToPublic(f.FavoriteUser),
	}
}
