package usecase

import (
	"errors"
	"time"

	"field-presence-backend/internal/geo"
	"field-presence-backend/internal/logger"
	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"

	"gorm.io/gorm"
)

// StrictRadiusMeters is the time-bridge radius. It is intentionally
// tighter than the branch geofence used for manual check-in validation:
// a passive record should only ever open when the employee is standing
// at the branch, not merely near it.
const StrictRadiusMeters = 20.0

const dateLayout = "2006-01-02"

// LocationPing is the validated ping payload, coerced at the HTTP
// boundary into a typed value.
type LocationPing struct {
	Latitude   float64
	Longitude  float64
	Accuracy   *float64
	ReceivedAt time.Time
	Offline    bool
}

// PresenceUsecase drives the time bridge: a per-ping state machine over
// the daily attendance record. States are NoRecord, Open and Closed;
// only in-zone pings cause transitions, and Closed is terminal for the
// day (an explicit checkout always wins over the passive path).
type PresenceUsecase struct {
	attRepo    repository.AttendanceRepository
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
	settings   repository.SettingRepository
	log        *logger.Logger
	now        func() time.Time
}

func NewPresenceUsecase(attRepo repository.AttendanceRepository, userRepo repository.UserRepository, branchRepo repository.BranchRepository, settings repository.SettingRepository, log *logger.Logger) *PresenceUsecase {
	return &PresenceUsecase{
		attRepo:    attRepo,
		userRepo:   userRepo,
		branchRepo: branchRepo,
		settings:   settings,
		log:        log,
		now:        time.Now,
	}
}

// Ingest processes one ping for the given user: refreshes the last-seen
// fields, then runs the geofence state machine. Out-of-range coordinates
// still count as activity but are excluded from everything geographic.
func (u *PresenceUsecase) Ingest(user *model.User, ping LocationPing) error {
	at := ping.ReceivedAt
	if at.IsZero() {
		at = u.now()
	}

	valid := geo.ValidCoordinates(ping.Latitude, ping.Longitude)

	var lat, lng *float64
	if valid {
		lat, lng = &ping.Latitude, &ping.Longitude
	}
	if err := u.userRepo.UpdatePresence(user.ID, lat, lng, at, !ping.Offline); err != nil {
		return err
	}
	if !valid {
		return nil
	}

	// No assigned branch, or a branch without a geofence, disables the
	// time bridge for this user. Not an error condition.
	if user.BranchID == nil {
		return nil
	}
	branch, err := u.branchRepo.GetByID(*user.BranchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !branch.HasGeofence() {
		return nil
	}

	distance := geo.HaversineDistanceMeters(ping.Latitude, ping.Longitude, branch.Latitude, branch.Longitude)

	// Outside the strict radius nothing happens: no creation, no
	// refresh, and never a closure.
	if distance > StrictRadiusMeters {
		return nil
	}

	date := at.Format(dateLayout)
	rec, err := u.attRepo.GetByUserAndDate(user.ID, date)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created, cerr := u.openRecord(user, ping, distance, at, date)
		if cerr != nil {
			return cerr
		}
		if created {
			return nil
		}
		// Lost the creation race to a concurrent ping; fall through to
		// the update path against the winner's record.
		rec, err = u.attRepo.GetByUserAndDate(user.ID, date)
		if err != nil {
			return err
		}
	}

	if rec.IsClosed() {
		// Terminal for the day. The explicit checkout workflow owns
		// this record now.
		return nil
	}

	return u.attRepo.UpdateLocation(rec.ID, ping.Latitude, ping.Longitude, distance, at)
}

// openRecord creates the day's record from the first in-zone ping. This
// is a check-in-only event: CheckOutTime stays nil no matter what, the
// arrival is not a same-instant full session.
func (u *PresenceUsecase) openRecord(user *model.User, ping LocationPing, distance float64, at time.Time, date string) (created bool, err error) {
	status := model.StatusPresent
	lateMinutes := u.lateMinutes(at)
	if lateMinutes > 0 {
		status = model.StatusLate
	}

	rec := &model.AttendanceRecord{
		UserID:          user.ID,
		Date:            date,
		CheckInTime:     at,
		CheckOutTime:    nil,
		CheckInLat:      ping.Latitude,
		CheckInLng:      ping.Longitude,
		CheckInDistance: distance,
		Status:          status,
		CheckInMethod:   model.MethodPassive,
		LateMinutes:     lateMinutes,
	}
	if err := u.attRepo.Create(rec); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}

	u.log.Info("passive check-in",
		"user_id", user.ID, "date", date, "status", status, "distance_m", distance)
	return true, nil
}

// lateMinutes compares the check-in instant against the configured
// workday start for the same calendar day.
func (u *PresenceUsecase) lateMinutes(at time.Time) int {
	raw := u.settings.GetString(model.SettingWorkStartTime, "09:00")
	start, err := time.Parse("15:04", raw)
	if err != nil {
		return 0
	}
	workStart := time.Date(at.Year(), at.Month(), at.Day(), start.Hour(), start.Minute(), 0, 0, at.Location())
	if !at.After(workStart) {
		return 0
	}
	return int(at.Sub(workStart).Minutes())
}
