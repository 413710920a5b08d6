package usecase

import (
	"fmt"
	"time"

	"field-presence-backend/internal/logger"
	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"
)

// AwolUsecase handles the client-signaled "left the work zone" event.
// It is triggered only by the explicit flag on the ping payload, never
// derived from the geofence distance, and it never blocks or fails the
// ping that carried it.
type AwolUsecase struct {
	userRepo   repository.UserRepository
	dispatcher *AlertDispatcher
	log        *logger.Logger
}

func NewAwolUsecase(userRepo repository.UserRepository, dispatcher *AlertDispatcher, log *logger.Logger) *AwolUsecase {
	return &AwolUsecase{userRepo: userRepo, dispatcher: dispatcher, log: log}
}

// Report raises a branch-scoped warning carrying the reported position.
func (u *AwolUsecase) Report(userID uint, lat, lng float64, at time.Time) {
	user, err := u.userRepo.GetByID(userID)
	if err != nil {
		u.log.Warn("awol report for unresolvable user", "user_id", userID, "error", err)
		return
	}
	if user.BranchID == nil {
		u.log.Warn("awol report for user without branch", "user_id", userID)
		return
	}

	name := user.Name
	if name == "" {
		name = fmt.Sprintf("employee #%d", user.ID)
	}

	u.dispatcher.Dispatch(
		model.ScopeBranch, *user.BranchID,
		model.SeverityWarning,
		"Employee left work zone",
		fmt.Sprintf("%s reported leaving the work zone at %s", name, at.Format("15:04")),
		map[string]interface{}{
			"user_id":     user.ID,
			"employee_no": user.EmployeeNo,
			"latitude":    lat,
			"longitude":   lng,
			"reported_at": at.Format(time.RFC3339),
		},
	)
}
