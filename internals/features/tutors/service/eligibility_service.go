package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepmaster_backend/internals/features/tutors/model"
)

var (
	ErrTutorNotFound    = errors.New("tutor profile not found")
	ErrTutorNotApproved = errors.New("tutor account not approved")
)

// EligibilityService is the capacity & eligibility gate in front of exam
// creation. Pure precondition checks, no writes.
type EligibilityService struct {
	DB *gorm.DB
}

func NewEligibilityService(db *gorm.DB) *EligibilityService {
	return &EligibilityService{DB: db}
}

// EnsureApprovedTutor loads the profile and rejects anything not approved.
func (s *EligibilityService) EnsureApprovedTutor(ctx context.Context, tutorID uuid.UUID) (*model.TutorProfileModel, error) {
	var profile model.TutorProfileModel
	if err := s.DB.WithContext(ctx).
		First(&profile, "tutor_profile_id = ?", tutorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}
	if profile.TutorProfileStatus != model.TutorProfileStatusApproved {
		return nil, ErrTutorNotApproved
	}
	return &profile, nil
}

// ResolveMaxCandidates: caller-supplied ceiling, or the tutor's quota.
func ResolveMaxCandidates(profile *model.TutorProfileModel, requested *int) int {
	if requested != nil && *requested > 0 {
		return *requested
	}
	return profile.TutorProfileStudentQuota
}
