package service

import (
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/internal/repository"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/storage"
)

// EvenementService manages club activities and the homepage banner.
type EvenementService struct {
	evenementRepo *repository.EvenementRepository
	storage       *storage.Storage
}

func NewEvenementService(evenementRepo *repository.EvenementRepository, st *storage.Storage) *EvenementService {
	return &EvenementService{
		evenementRepo: evenementRepo,
		storage:       st,
	}
}

func (s *EvenementService) Create(e *models.Evenement, poster *multipart.FileHeader) (*models.Evenement, error) {
	if e.Titel == "" || e.Datum == "" {
		return nil, fmt.Errorf("%w: titel and datum are required", ErrInvalidInput)
	}

	if poster != nil {
		filename, err := s.storage.SaveImage(poster)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		e.AfbeeldingNaam = filename
	}

	e.ID = uuid.New().String()
	created, err := s.evenementRepo.Create(e)
	if err != nil {
		if e.AfbeeldingNaam != "" {
			s.storage.Delete(e.AfbeeldingNaam)
		}
		return nil, fmt.Errorf("failed to create evenement: %w", err)
	}
	return created, nil
}

func (s *EvenementService) GetByID(id string) (*models.Evenement, error) {
	e, err := s.evenementRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get evenement: %w", err)
	}
	if e == nil {
		return nil, ErrEvenementNotFound
	}
	return e, nil
}

func (s *EvenementService) List() ([]*models.Evenement, error) {
	events, err := s.evenementRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list evenementen: %w", err)
	}
	return events, nil
}

// Update rewrites an evenement. A new poster replaces the old file.
func (s *EvenementService) Update(id string, e *models.Evenement, poster *multipart.FileHeader) (*models.Evenement, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	e.ID = existing.ID
	e.AfbeeldingNaam = existing.AfbeeldingNaam

	if poster != nil {
		filename, err := s.storage.SaveImage(poster)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if existing.AfbeeldingNaam != "" {
			if err := s.storage.Delete(existing.AfbeeldingNaam); err != nil {
				logger.Warn("Failed to delete old poster", "file", existing.AfbeeldingNaam, "error", err)
			}
		}
		e.AfbeeldingNaam = filename
	}

	if err := s.evenementRepo.Update(e); err != nil {
		return nil, fmt.Errorf("failed to update evenement: %w", err)
	}
	return s.GetByID(id)
}

func (s *EvenementService) Delete(id string) error {
	existing, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.evenementRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete evenement: %w", err)
	}
	if existing.AfbeeldingNaam != "" {
		if err := s.storage.Delete(existing.AfbeeldingNaam); err != nil {
			logger.Warn("Failed to delete poster", "file", existing.AfbeeldingNaam, "error", err)
		}
	}
	return nil
}

// Announcement returns the homepage banner text, falling back to the
// default when nothing has been configured.
func (s *EvenementService) Announcement() (string, error) {
	text, err := s.evenementRepo.GetAnnouncement()
	if err != nil {
		return "", fmt.Errorf("failed to get announcement: %w", err)
	}
	return text, nil
}

// SetAnnouncement replaces the banner text. Empty resets to the default.
func (s *EvenementService) SetAnnouncement(text string) (string, error) {
	if text == "" {
		text = models.DefaultAnnouncement
	}
	if err := s.evenementRepo.SetAnnouncement(text); err != nil {
		return "", fmt.Errorf("failed to set announcement: %w", err)
	}
	return text, nil
}
