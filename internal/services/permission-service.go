package services

import (
	"fmt"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/repository"
)

// PermissionService answers "may user U perform op on account A" from the
// capability table. No row means no access; there is no admin override.
type PermissionService interface {
	Allowed(userID, accountID uint, op domain.Operation) (bool, error)
	Require(userID, accountID uint, op domain.Operation) error
	ViewableAccountIDs(userID uint) ([]uint, error)
}

type permissionService struct {
	capRepo repository.CapabilityRepository
}

func NewPermissionService(capRepo repository.CapabilityRepository) PermissionService {
	return &permissionService{capRepo: capRepo}
}

func (p *permissionService) Allowed(userID, accountID uint, op domain.Operation) (bool, error) {
	column, ok := op.Column()
	if !ok {
		return false, fmt.Errorf("unknown operation %q", op)
	}
	if userID == 0 || accountID == 0 {
		return false, nil
	}
	return p.capRepo.HasFlag(userID, accountID, column)
}

func (p *permissionService) Require(userID, accountID uint, op domain.Operation) error {
	ok, err := p.Allowed(userID, accountID, op)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s not allowed on investment account %d", domain.ErrPermissionDenied, op, accountID)
	}
	return nil
}

func (p *permissionService) ViewableAccountIDs(userID uint) ([]uint, error) {
	column, _ := domain.OperationView.Column()
	return p.capRepo.AccountIDsWithFlag(userID, column)
}
