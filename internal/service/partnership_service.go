package service

import (
	"context"
	"errors"
	"fmt"

	"auromart/internal/apierror"
	"auromart/internal/dto"
	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PartnershipService interface {
	// AvailablePartners applies the role visibility table and drops the
	// requester plus every user it already sent a request to.
	AvailablePartners(ctx context.Context, userID uuid.UUID, role model.Role) ([]dto.PublicUserResponse, error)
	SendRequest(ctx context.Context, requesterID uuid.UUID, req dto.PartnershipRequest) (*dto.PartnershipResponse, error)
	Respond(ctx context.Context, userID, partnershipID uuid.UUID, req dto.RespondPartnershipRequest) (*dto.PartnershipResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.PartnershipResponse, error)
	ListReceived(ctx context.Context, userID uuid.UUID) ([]dto.PartnershipResponse, error)
	// ListDirectory lists active users of one role, optionally filtered by a
	// search term.
	ListDirectory(ctx context.Context, role model.Role, search string) ([]dto.PublicUserResponse, error)
	// SearchPartners searches every role visible to the caller, excluding the
	// caller but not users it already requested.
	SearchPartners(ctx context.Context, userID uuid.UUID, role model.Role, search string) ([]dto.PublicUserResponse, error)
}

type partnershipService struct {
	repo          repository.PartnershipRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	dispatcher    Dispatcher
}

func NewPartnershipService(
	repo repository.PartnershipRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	dispatcher Dispatcher,
) PartnershipService {
	return &partnershipService{repo: repo, users: users, notifications: notifications, dispatcher: dispatcher}
}

func (s *partnershipService) AvailablePartners(ctx context.Context, userID uuid.UUID, role model.Role) ([]dto.PublicUserResponse, error) {
	roles := model.VisiblePartnerRoles(role)
	if len(roles) == 0 {
		return []dto.PublicUserResponse{}, nil
	}
	connected, err := s.repo.PartnerIDsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	exclude := append(connected[:len(connected):len(connected)], userID)
	users, err := s.users.ListActiveByRoles(ctx, roles, exclude, "")
	if err != nil {
		return nil, err
	}
	return usersToPublic(users), nil
}

func (s *partnershipService) SendRequest(ctx context.Context, requesterID uuid.UUID, req dto.PartnershipRequest) (*dto.PartnershipResponse, error) {
	partnerID, err := parseID(req.PartnerID, "partnerId")
	if err != nil {
		return nil, err
	}
	if partnerID == requesterID {
		return nil, apierror.Validation("cannot request a partnership with yourself")
	}
	kind := model.PartnershipType(req.PartnershipType)
	if !kind.Valid() {
		return nil, apierror.Validation("partnershipType must be supplier, distributor or retailer")
	}
	partner, err := s.users.FindByID(ctx, partnerID)
	if err != nil {
		return nil, lookupErr(err, "partner")
	}
	if !partner.IsActive {
		return nil, apierror.NotFound("partner not found")
	}
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, lookupErr(err, "requester")
	}

	p := model.Partnership{
		RequesterID:     requesterID,
		PartnerID:       partnerID,
		Status:          model.PartnershipPending,
		PartnershipType: kind,
	}
	var note model.Notification
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &p); err != nil {
			return err
		}
		note = model.Notification{
			UserID:  partnerID,
			Message: fmt.Sprintf("%s sent you a %s partnership request", requester.DisplayName(), kind),
			Type:    model.NotificationPartnershipRequest,
		}
		return s.notifications.Create(ctx, tx, &note)
	})
	if txErr != nil {
		return nil, txErr
	}
	enqueueNotifications(ctx, s.dispatcher, note.ID)

	log.Info().
		Str("partnership_id", p.ID.String()).
		Str("requester_id", requesterID.String()).
		Str("partner_id", partnerID.String()).
		Msg("partnership requested")
	p.Partner = partner
	resp := partnershipToResponse(&p)
	return &resp, nil
}

func (s *partnershipService) Respond(ctx context.Context, userID, partnershipID uuid.UUID, req dto.RespondPartnershipRequest) (*dto.PartnershipResponse, error) {
	status := model.PartnershipStatus(req.Status)
	if status != model.PartnershipApproved && status != model.PartnershipRejected {
		return nil, apierror.Validation("status must be approved or rejected")
	}
	p, err := s.repo.FindByID(ctx, partnershipID)
	if err != nil {
		return nil, lookupErr(err, "partnership")
	}
	if p.PartnerID != userID {
		return nil, apierror.Forbidden("only the requested partner can respond")
	}
	if p.Status != model.PartnershipPending {
		return nil, apierror.Conflict("partnership already %s", p.Status)
	}

	var note model.Notification
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatus(ctx, tx, p.ID, model.PartnershipPending, status); err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				return apierror.Conflict("partnership was answered concurrently")
			}
			return err
		}
		note = model.Notification{
			UserID:  p.RequesterID,
			Message: fmt.Sprintf("Your partnership request was %s", status),
			Type:    model.NotificationPartnershipResponse,
		}
		return s.notifications.Create(ctx, tx, &note)
	})
	if txErr != nil {
		return nil, txErr
	}
	enqueueNotifications(ctx, s.dispatcher, note.ID)

	p.Status = status
	resp := partnershipToResponse(p)
	return &resp, nil
}

func (s *partnershipService) List(ctx context.Context, userID uuid.UUID) ([]dto.PartnershipResponse, error) {
	rows, err := s.repo.ListApprovedByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return partnershipsToResponse(rows), nil
}

func (s *partnershipService) ListReceived(ctx context.Context, userID uuid.UUID) ([]dto.PartnershipResponse, error) {
	rows, err := s.repo.ListByPartner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return partnershipsToResponse(rows), nil
}

func (s *partnershipService) ListDirectory(ctx context.Context, role model.Role, search string) ([]dto.PublicUserResponse, error) {
	users, err := s.users.ListActiveByRoles(ctx, []model.Role{role}, nil, search)
	if err != nil {
		return nil, err
	}
	return usersToPublic(users), nil
}

func (s *partnershipService) SearchPartners(ctx context.Context, userID uuid.UUID, role model.Role, search string) ([]dto.PublicUserResponse, error) {
	roles := model.VisiblePartnerRoles(role)
	if len(roles) == 0 {
		return []dto.PublicUserResponse{}, nil
	}
	users, err := s.users.ListActiveByRoles(ctx, roles, []uuid.UUID{userID}, search)
	if err != nil {
		return nil, err
	}
	return usersToPublic(users), nil
}

func partnershipsToResponse(rows []model.Partnership) []dto.PartnershipResponse {
	out := make([]dto.PartnershipResponse, len(rows))
	for i := range rows {
		out[i] = partnershipToResponse(&rows[i])
	}
	return out
}
