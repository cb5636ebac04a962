package service

import (
	"context"
	"strings"

	"auromart/internal/apierror"
	"auromart/internal/dto"
	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
)

const defaultSearchHistoryLimit = 10

type SearchService interface {
	Record(ctx context.Context, userID uuid.UUID, req dto.RecordSearchRequest) (*dto.SearchHistoryResponse, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]dto.SearchHistoryResponse, error)
}

type searchService struct {
	repo repository.SearchHistoryRepository
}

func NewSearchService(repo repository.SearchHistoryRepository) SearchService {
	return &searchService{repo: repo}
}

func (s *searchService) Record(ctx context.Context, userID uuid.UUID, req dto.RecordSearchRequest) (*dto.SearchHistoryResponse, error) {
	term := strings.TrimSpace(req.SearchTerm)
	if term == "" {
		return nil, apierror.Validation("searchTerm is required")
	}
	h := model.SearchHistory{
		UserID:      userID,
		SearchTerm:  term,
		SearchType:  model.SearchType(req.SearchType),
		ResultCount: req.ResultCount,
	}
	if err := s.repo.Create(ctx, &h); err != nil {
		return nil, err
	}
	resp := searchToResponse(&h)
	return &resp, nil
}

func (s *searchService) History(ctx context.Context, userID uuid.UUID, limit int) ([]dto.SearchHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultSearchHistoryLimit
	}
	rows, err := s.repo.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SearchHistoryResponse, len(rows))
	for i := range rows {
		out[i] = searchToResponse(&rows[i])
	}
	return out, nil
}

func searchToResponse(h *model.SearchHistory) dto.SearchHistoryResponse {
	return dto.SearchHistoryResponse{
		ID:          h.ID.String(),
		SearchTerm:  h.SearchTerm,
		SearchType:  string(h.SearchType),
		ResultCount: h.ResultCount,
		CreatedAt:   h.CreatedAt,
	}
}
