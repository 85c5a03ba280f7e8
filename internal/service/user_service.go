package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/internal/repository"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/jwt"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
)

type UserService struct {
	userRepo   *repository.UserRepository
	jwtManager *jwt.JWTManager
}

func NewUserService(userRepo *repository.UserRepository, jwtManager *jwt.JWTManager) *UserService {
	return &UserService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

func validCategorie(categorie string) bool {
	switch categorie {
	case models.CategorieBestuurslid, models.CategorieVeteranen,
		models.CategorieZaterdag, models.CategorieZondag:
		return true
	}
	return false
}

// Register creates a member account. New accounts always come in as
// plain members; an admin promotes them afterwards.
func (s *UserService) Register(naam, email, password, categorie string) (*models.User, string, error) {
	if naam == "" || email == "" || len(password) < 8 {
		return nil, "", fmt.Errorf("%w: naam, email and a password of at least 8 characters are required", ErrInvalidInput)
	}
	if !validCategorie(categorie) {
		return nil, "", fmt.Errorf("%w: unknown categorie %q", ErrInvalidInput, categorie)
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrUserAlreadyExists
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(uuid.New().String(), naam, email, hash, categorie, models.RolLid)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtManager.Generate(user.ID, user.Naam, user.Email, user.Categorie, user.Rol)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User registered", "userId", user.ID, "categorie", user.Categorie)
	return user, token, nil
}

// Login verifies credentials and issues a token.
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user.ID, user.Naam, user.Email, user.Categorie, user.Rol)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List() ([]*models.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update lets an admin change a member's name, categorie, or rol.
func (s *UserService) Update(id string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Naam == "" {
		req.Naam = user.Naam
	}
	if req.Categorie == "" {
		req.Categorie = user.Categorie
	}
	if req.Rol == "" {
		req.Rol = user.Rol
	}
	if !validCategorie(req.Categorie) {
		return nil, fmt.Errorf("%w: unknown categorie %q", ErrInvalidInput, req.Categorie)
	}
	if req.Rol != models.RolAdmin && req.Rol != models.RolLid {
		return nil, fmt.Errorf("%w: unknown rol %q", ErrInvalidInput, req.Rol)
	}

	if err := s.userRepo.Update(id, req.Naam, req.Categorie, req.Rol); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
