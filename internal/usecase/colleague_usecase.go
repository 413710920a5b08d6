package usecase

import (
	"sort"
	"time"

	"field-presence-backend/internal/geo"
	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"
)

// Visibility modes.
const (
	VisibilitySelf   = "self"
	VisibilityBranch = "branch"
	VisibilityGlobal = "global"
)

const (
	// A colleague with no open record still counts as present if they
	// pinged within this window.
	presenceFreshness = 2 * time.Hour

	// Response-size bound.
	maxColleagues = 50

	defaultCutoffHour = 23
)

// Colleague is one co-located, currently present co-worker as surfaced
// to the requester.
type Colleague struct {
	UserID             uint       `json:"user_id"`
	Name               string     `json:"name,omitempty"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	IsOnline           bool       `json:"is_online"`
	LastActivityAt     *time.Time `json:"last_activity_at"`
	IsWithinGeofence   bool       `json:"is_within_geofence"`
	DistanceFromBranch float64    `json:"distance_from_branch"`
}

// ColleagueUsecase computes the set of active colleagues visible to a
// requester under the configured visibility policy.
type ColleagueUsecase struct {
	userRepo repository.UserRepository
	attRepo  repository.AttendanceRepository
	settings repository.SettingRepository
	now      func() time.Time
}

func NewColleagueUsecase(userRepo repository.UserRepository, attRepo repository.AttendanceRepository, settings repository.SettingRepository) *ColleagueUsecase {
	return &ColleagueUsecase{
		userRepo: userRepo,
		attRepo:  attRepo,
		settings: settings,
		now:      time.Now,
	}
}

// VisibleColleagues returns the colleagues the requester may see right
// now, most recently active first, capped at 50.
func (u *ColleagueUsecase) VisibleColleagues(requester *model.User) ([]Colleague, error) {
	now := u.now()

	// Quiet hours: after the cutoff the shift is over and nobody is
	// surfaced, regardless of stale pings still in the table.
	cutoff := u.settings.GetInt(model.SettingColleagueCutoffHour, defaultCutoffHour)
	if now.Hour() >= cutoff {
		return []Colleague{}, nil
	}

	mode := u.settings.GetString(model.SettingVisibilityMode, VisibilityBranch)
	if mode == VisibilitySelf {
		return []Colleague{}, nil
	}

	var candidates []model.User
	var err error
	if mode == VisibilityGlobal || requester.RoleLevel >= model.RoleLevelManager {
		candidates, err = u.userRepo.ListActive()
	} else {
		if requester.BranchID == nil {
			return []Colleague{}, nil
		}
		candidates, err = u.userRepo.ListActiveByBranch(*requester.BranchID)
	}
	if err != nil {
		return nil, err
	}

	showNames := u.settings.GetBool(model.SettingShowNames, true)
	today := now.Format(dateLayout)

	colleagues := make([]Colleague, 0, len(candidates))
	for i := range candidates {
		cand := &candidates[i]
		if cand.ID == requester.ID {
			continue
		}
		if cand.LastLatitude == nil || cand.LastLongitude == nil {
			continue
		}
		if !u.isCurrentlyPresent(cand, today, now) {
			continue
		}

		col := Colleague{
			UserID:         cand.ID,
			Latitude:       *cand.LastLatitude,
			Longitude:      *cand.LastLongitude,
			IsOnline:       cand.IsOnline,
			LastActivityAt: cand.LastActivityAt,
		}
		if showNames {
			col.Name = cand.Name
		}
		if cand.Branch.HasGeofence() {
			col.DistanceFromBranch = geo.HaversineDistanceMeters(
				*cand.LastLatitude, *cand.LastLongitude,
				cand.Branch.Latitude, cand.Branch.Longitude)
			col.IsWithinGeofence = col.DistanceFromBranch <= cand.Branch.GeofenceRadiusM
		}
		colleagues = append(colleagues, col)
	}

	sort.Slice(colleagues, func(i, j int) bool {
		a, b := colleagues[i].LastActivityAt, colleagues[j].LastActivityAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	if len(colleagues) > maxColleagues {
		colleagues = colleagues[:maxColleagues]
	}
	return colleagues, nil
}

// isCurrentlyPresent: an open attendance record today, or activity inside
// the freshness window — but never once a checkout is on record for the
// day, because a checked-out colleague has left regardless of how fresh
// their last ping is.
func (u *ColleagueUsecase) isCurrentlyPresent(cand *model.User, today string, now time.Time) bool {
	rec, err := u.attRepo.GetByUserAndDate(cand.ID, today)
	if err == nil && rec.IsClosed() {
		return false
	}
	if err == nil && !rec.IsClosed() {
		return true
	}
	return cand.LastActivityAt != nil && now.Sub(*cand.LastActivityAt) <= presenceFreshness
}
