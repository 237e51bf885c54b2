package clinicops

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"clinicore/models"
	"clinicore/services/booking"
	"clinicore/utils"
)

// CreateLeave validates and persists a one-off leave exception. Slots
// already booked under the blocked range are untouched; clinic staff decide
// whether to cancel them.
func (s *DefaultClinicOpsService) CreateLeave(ctx context.Context, req CreateLeaveRequest) (*models.LeaveException, error) {
	if err := s.checkAffiliation(ctx, req.ClinicID, req.DoctorID); err != nil {
		return nil, err
	}
	if !validDate(req.LeaveDate) {
		return nil, booking.NewValidationError(fmt.Sprintf("invalid leaveDate %q, expected YYYY-MM-DD", req.LeaveDate))
	}

	var scope models.LeaveScope
	if req.WholeDay {
		scope = models.FullDay()
	} else {
		if req.Start < 0 || req.End > 24*60 || req.Start >= req.End {
			return nil, booking.NewValidationError("partial-day leave requires start before end within a single day")
		}
		scope = models.PartialDay(req.Start, req.End)
	}

	l := &models.LeaveException{
		ID:        uuid.New().String(),
		ClinicID:  req.ClinicID,
		DoctorID:  req.DoctorID,
		LeaveDate: req.LeaveDate,
		Scope:     scope,
		Reason:    req.Reason,
	}
	if err := s.Leaves.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create leave exception: %w", err)
	}
	utils.GetLogger().Info("leave exception created",
		zap.String("leaveId", l.ID),
		zap.String("clinicId", l.ClinicID),
		zap.String("doctorId", l.DoctorID),
		zap.String("leaveDate", l.LeaveDate),
		zap.Bool("wholeDay", l.Scope.WholeDay),
	)
	return l, nil
}

func (s *DefaultClinicOpsService) DeleteLeave(ctx context.Context, id string) error {
	if err := s.Leaves.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return booking.NewNotFoundError(fmt.Sprintf("leave exception %s not found", id))
		}
		return fmt.Errorf("failed to delete leave exception %s: %w", id, err)
	}
	return nil
}

func (s *DefaultClinicOpsService) ListLeaves(ctx context.Context, clinicID, doctorID string) ([]models.LeaveException, error) {
	if clinicID == "" || doctorID == "" {
		return nil, booking.NewValidationError("clinicId and doctorId are required")
	}
	return s.Leaves.ListByDoctor(ctx, clinicID, doctorID)
}
