package services

import (
	"fmt"
	"log"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/interfaces"
	"github.com/SundayYogurt/investment_service/internal/repository"
)

// CapabilityService manages the user <-> account permission rows. Writes are
// administrative; the admin check itself happens in the route middleware.
type CapabilityService interface {
	List(actorID uint, isAdmin bool) ([]dto.CapabilityResponse, error)
	Get(actorID uint, isAdmin bool, id uint) (*dto.CapabilityResponse, error)
	Create(actorID uint, input dto.CapabilityCreateRequest) (*dto.CapabilityResponse, error)
	Update(actorID, id uint, input dto.CapabilityFlags) (*dto.CapabilityResponse, error)
	Delete(actorID, id uint) error
}

type capabilityService struct {
	repo        repository.CapabilityRepository
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	producer    interfaces.ProducerHandler
}

func NewCapabilityService(
	repo repository.CapabilityRepository,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	producer interfaces.ProducerHandler,
) CapabilityService {
	return &capabilityService{
		repo:        repo,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		producer:    producer,
	}
}

// List shows every row to admins and only their own rows to anyone else.
func (s *capabilityService) List(actorID uint, isAdmin bool) ([]dto.CapabilityResponse, error) {
	var (
		caps []domain.Capability
		err  error
	)
	if isAdmin {
		caps, err = s.repo.List()
	} else {
		caps, err = s.repo.ListByUserID(actorID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.CapabilityResponse, 0, len(caps))
	for i := range caps {
		out = append(out, toCapabilityResponse(&caps[i]))
	}
	return out, nil
}

func (s *capabilityService) Get(actorID uint, isAdmin bool, id uint) (*dto.CapabilityResponse, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, translateRepoError(err, "user investment account")
	}
	if !isAdmin && c.UserID != actorID {
		return nil, fmt.Errorf("%w: not your user investment account", domain.ErrPermissionDenied)
	}
	resp := toCapabilityResponse(c)
	return &resp, nil
}

func (s *capabilityService) Create(actorID uint, input dto.CapabilityCreateRequest) (*dto.CapabilityResponse, error) {
	if input.User == 0 {
		return nil, validationError("user is required")
	}
	if input.InvestmentAccount == 0 {
		return nil, validationError("investment_account is required")
	}

	if _, err := s.userRepo.FindUserById(input.User); err != nil {
		return nil, translateRepoError(err, "user")
	}
	if _, err := s.accountRepo.FindByID(input.InvestmentAccount); err != nil {
		return nil, translateRepoError(err, "investment account")
	}
	if _, err := s.repo.FindByPair(input.User, input.InvestmentAccount); err == nil {
		return nil, validationError("user %d already has a row for investment account %d", input.User, input.InvestmentAccount)
	}

	c := &domain.Capability{
		UserID:              input.User,
		InvestmentAccountID: input.InvestmentAccount,
		CanView:             input.CanView,
		CanCreate:           input.CanCreate,
		CanUpdate:           input.CanUpdate,
		CanDelete:           input.CanDelete,
	}
	if err := s.repo.Create(c); err != nil {
		log.Printf("create capability error: %v", err)
		return nil, translateRepoError(err, "user investment account")
	}

	publishEvent(s.producer, "user_investment_account.created", EntityCapability, c.ID, actorID)
	return s.reload(c.ID)
}

func (s *capabilityService) Update(actorID, id uint, input dto.CapabilityFlags) (*dto.CapabilityResponse, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, translateRepoError(err, "user investment account")
	}

	c.CanView = input.CanView
	c.CanCreate = input.CanCreate
	c.CanUpdate = input.CanUpdate
	c.CanDelete = input.CanDelete
	if err := s.repo.UpdateFlags(c); err != nil {
		log.Printf("update capability error: %v", err)
		return nil, err
	}

	publishEvent(s.producer, "user_investment_account.updated", EntityCapability, c.ID, actorID)
	return s.reload(c.ID)
}

func (s *capabilityService) Delete(actorID, id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return translateRepoError(err, "user investment account")
	}
	publishEvent(s.producer, "user_investment_account.deleted", EntityCapability, id, actorID)
	return nil
}

func (s *capabilityService) reload(id uint) (*dto.CapabilityResponse, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, translateRepoError(err, "user investment account")
	}
	resp := toCapabilityResponse(c)
	return &resp, nil
}

func toCapabilityResponse(c *domain.Capability) dto.CapabilityResponse {
	return dto.CapabilityResponse{
		ID:                  c.ID,
		UserID:              c.UserID,
		User:                c.User.Username,
		InvestmentAccountID: c.InvestmentAccountID,
		InvestmentAccount:   c.InvestmentAccount.AccountName,
		CapabilityFlags: dto.CapabilityFlags{
			CanView:   c.CanView,
			CanCreate: c.CanCreate,
			CanUpdate: c.CanUpdate,
			CanDelete: c.CanDelete,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
