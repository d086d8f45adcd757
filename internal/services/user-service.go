package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/helper"
	"github.com/SundayYogurt/investment_service/internal/interfaces"
	"github.com/SundayYogurt/investment_service/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	// Auth
	Login(input dto.TokenObtainRequest) (*domain.User, error)
	IssueTokens(input dto.TokenObtainRequest) (dto.TokenPairResponse, error)
	RefreshAccessToken(input dto.TokenRefreshRequest) (dto.TokenRefreshResponse, error)

	// Users
	CreateUser(actorID uint, input dto.CreateUserRequest) (*domain.User, error)
	GetUser(userID uint) (*domain.User, error)
	ListUsers() ([]domain.User, error)
	DeleteUser(actorID, userID uint) error

	// Roles
	SetRoles(actorID, userID uint, input dto.SetRolesRequest) (*dto.UserRolesResponse, error)
	IsAdmin(userID uint) (bool, error)
	SeedRoles() error
	EnsureAdmin(username, password string) error
}

type userService struct {
	repo         repository.UserRepository
	roleRepo     repository.RoleRepository
	userRoleRepo repository.UserRoleRepository
	auth         helper.Auth
	producer     interfaces.ProducerHandler
}

func NewUserService(
	repo repository.UserRepository,
	roleRepo repository.RoleRepository,
	userRoleRepo repository.UserRoleRepository,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
) UserService {
	return &userService{
		repo:         repo,
		roleRepo:     roleRepo,
		userRoleRepo: userRoleRepo,
		auth:         auth,
		producer:     producer,
	}
}

// AUTH
func (u *userService) Login(input dto.TokenObtainRequest) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: invalid username or password", domain.ErrUnauthenticated)
	}

	user, err := u.repo.FindUserByUsername(username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: invalid username or password", domain.ErrUnauthenticated)
	}

	if err := u.auth.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	return user, nil
}

func (u *userService) IssueTokens(input dto.TokenObtainRequest) (dto.TokenPairResponse, error) {
	user, err := u.Login(input)
	if err != nil {
		return dto.TokenPairResponse{}, err
	}
	return u.auth.GenerateTokenPair(user.ID, user.Username)
}

func (u *userService) RefreshAccessToken(input dto.TokenRefreshRequest) (dto.TokenRefreshResponse, error) {
	claims, err := u.auth.VerifyRefreshToken(input.Refresh)
	if err != nil {
		return dto.TokenRefreshResponse{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	// the user may have been deleted since the refresh token was issued
	user, err := u.repo.FindUserById(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenRefreshResponse{}, fmt.Errorf("%w: user no longer exists", domain.ErrUnauthenticated)
		}
		return dto.TokenRefreshResponse{}, err
	}

	access, err := u.auth.GenerateToken(user.ID, user.Username, helper.TokenTypeAccess)
	if err != nil {
		return dto.TokenRefreshResponse{}, err
	}
	return dto.TokenRefreshResponse{Access: access}, nil
}

// USERS
func (u *userService) CreateUser(actorID uint, input dto.CreateUserRequest) (*domain.User, error) {
	username, err := validateText("username", input.Username, 150)
	if err != nil {
		return nil, err
	}
	email, err := validateEmail(input.Email)
	if err != nil {
		return nil, err
	}

	if _, err := u.repo.FindUserByUsername(username); err == nil {
		return nil, validationError("username %s already exists", username)
	}

	hashed, err := u.auth.CreateHashedPassword(input.Password)
	if err != nil {
		return nil, validationError("%v", err)
	}

	usr, err := u.repo.CreateUser(&domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		return nil, translateRepoError(err, "user")
	}

	roles := []string{domain.RoleUser}
	if input.IsAdmin {
		roles = append(roles, domain.RoleAdmin)
	}
	if err := u.assignRoles(usr.ID, roles); err != nil {
		return nil, err
	}

	publishEvent(u.producer, "user.created", EntityUser, usr.ID, actorID)
	return usr, nil
}

func (u *userService) GetUser(userID uint) (*domain.User, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		return nil, translateRepoError(err, "user")
	}
	return user, nil
}

func (u *userService) ListUsers() ([]domain.User, error) {
	return u.repo.ListUsers()
}

func (u *userService) DeleteUser(actorID, userID uint) error {
	if actorID == userID {
		return validationError("cannot delete yourself")
	}
	if err := u.repo.DeleteUser(userID); err != nil {
		return translateRepoError(err, "user")
	}
	publishEvent(u.producer, "user.deleted", EntityUser, userID, actorID)
	return nil
}

// ROLES
func (u *userService) SetRoles(actorID, userID uint, input dto.SetRolesRequest) (*dto.UserRolesResponse, error) {
	if len(input.Roles) == 0 {
		return nil, validationError("roles must not be empty")
	}
	if _, err := u.repo.FindUserById(userID); err != nil {
		return nil, translateRepoError(err, "user")
	}
	if err := u.assignRoles(userID, input.Roles); err != nil {
		return nil, err
	}

	roles, err := u.userRoleRepo.GetRolesByUserID(userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.UserRolesResponse{UserID: userID, Roles: make([]dto.RoleResponse, 0, len(roles))}
	for _, r := range roles {
		resp.Roles = append(resp.Roles, dto.RoleResponse{ID: r.ID, Code: r.Code, Name: r.Name})
	}

	publishEvent(u.producer, "user.roles_updated", EntityUser, userID, actorID)
	return resp, nil
}

func (u *userService) assignRoles(userID uint, codes []string) error {
	seen := make(map[string]bool, len(codes))
	normalized := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		normalized = append(normalized, c)
	}

	roles, err := u.roleRepo.FindByCodes(normalized)
	if err != nil {
		return err
	}
	if len(roles) != len(normalized) {
		return validationError("unknown role in %v", normalized)
	}

	ids := make([]uint, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.ID)
	}
	return u.userRoleRepo.ReplaceUserRoles(userID, ids)
}

func (u *userService) IsAdmin(userID uint) (bool, error) {
	if userID == 0 {
		return false, errors.New("invalid user id")
	}
	return u.userRoleRepo.UserHasRole(userID, domain.RoleAdmin)
}

func (u *userService) SeedRoles() error {
	for _, code := range []string{domain.RoleAdmin, domain.RoleUser} {
		if err := u.roleRepo.EnsureRole(code, strings.ToLower(code)); err != nil {
			return err
		}
	}
	return nil
}

// EnsureAdmin creates the bootstrap administrator if it does not exist yet.
func (u *userService) EnsureAdmin(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}
	if _, err := u.repo.FindUserByUsername(username); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := u.CreateUser(0, dto.CreateUserRequest{
		Username: username,
		Password: password,
		IsAdmin:  true,
	}); err != nil {
		return err
	}
	log.Printf("bootstrap admin %q created", username)
	return nil
}
