package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/internal/repository"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
)

// ShiftService runs the festival work list: volunteers sign up for
// shifts, admins manage the slots and can pencil in people by hand.
type ShiftService struct {
	shiftRepo *repository.ShiftRepository
}

func NewShiftService(shiftRepo *repository.ShiftRepository) *ShiftService {
	return &ShiftService{shiftRepo: shiftRepo}
}

func (s *ShiftService) List() ([]*models.Shift, error) {
	shifts, err := s.shiftRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

// Save creates or rewrites a shift slot (admin). Existing signups are
// kept when the slot itself changes.
func (s *ShiftService) Save(shift *models.Shift) (*models.Shift, error) {
	if shift.Label == "" || shift.Date == "" {
		return nil, fmt.Errorf("%w: label and date are required", ErrInvalidInput)
	}
	if shift.Max < 0 {
		return nil, fmt.Errorf("%w: max cannot be negative", ErrInvalidInput)
	}
	if shift.ID == "" {
		shift.ID = uuid.New().String()
	}
	if err := s.shiftRepo.Upsert(shift); err != nil {
		return nil, fmt.Errorf("failed to save shift: %w", err)
	}
	return s.shiftRepo.FindByID(shift.ID)
}

func (s *ShiftService) Delete(id string) error {
	shift, err := s.shiftRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to get shift: %w", err)
	}
	if shift == nil {
		return ErrShiftNotFound
	}
	if err := s.shiftRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// hasName reports whether naam is already on the list, compared
// case-insensitively so "jan" cannot sign up next to "Jan".
func hasName(persons []models.ShiftPerson, naam string) bool {
	for _, p := range persons {
		if strings.EqualFold(p.Naam, naam) {
			return true
		}
	}
	return false
}

// SignUp adds a person to a shift. UID is empty for names an admin typed
// in for someone without an account.
func (s *ShiftService) SignUp(shiftID, uid, naam string, responsible bool) (*models.Shift, error) {
	naam = strings.TrimSpace(naam)
	if naam == "" {
		return nil, fmt.Errorf("%w: naam is required", ErrInvalidInput)
	}

	shift, err := s.shiftRepo.FindByID(shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}
	if shift.Full() {
		return nil, ErrShiftFull
	}
	if shift.HasUID(uid) || hasName(shift.Persons, naam) {
		return nil, ErrAlreadySignedUp
	}

	persons := append(shift.Persons, models.ShiftPerson{
		UID:         uid,
		Naam:        naam,
		Responsible: responsible,
	})
	if err := s.shiftRepo.UpdatePersons(shiftID, persons); err != nil {
		return nil, fmt.Errorf("failed to update signups: %w", err)
	}

	logger.Info("Shift signup", "shiftId", shiftID, "naam", naam)
	shift.Persons = persons
	return shift, nil
}

// Remove takes a person off a shift, by uid when present, by name for
// manually added entries.
func (s *ShiftService) Remove(shiftID, uid, naam string) (*models.Shift, error) {
	shift, err := s.shiftRepo.FindByID(shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}

	persons := make([]models.ShiftPerson, 0, len(shift.Persons))
	removed := false
	for _, p := range shift.Persons {
		match := (uid != "" && p.UID == uid) ||
			(uid == "" && strings.EqualFold(p.Naam, naam))
		if match && !removed {
			removed = true
			continue
		}
		persons = append(persons, p)
	}
	if !removed {
		return nil, ErrNotFound
	}

	if err := s.shiftRepo.UpdatePersons(shiftID, persons); err != nil {
		return nil, fmt.Errorf("failed to update signups: %w", err)
	}

	shift.Persons = persons
	return shift, nil
}
