package usecase

import (
	"fmt"
	"strings"
	"time"

	"field-presence-backend/internal/logger"
	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"
)

// Scoring constants. Thresholds are deliberately asymmetric in one spot:
// the per-employee "severe late" bar is 30 minutes, while the influence
// graph correlates at 15 minutes — individual severity and correlation
// sensitivity are different questions, so the two are kept separate.
const (
	defaultLookbackDays = 30
	severeLateMinutes   = 30

	trendWindowDays   = 7
	trendThresholdMin = 5.0
	trendScoreCap     = 30
	trendScoreFloor   = -20

	incidentRepeatThreshold = 3
	incidentRepeatPenalty   = 10

	lowPointsThreshold     = 100
	veryLowPointsThreshold = 20
	lowPointsPenalty       = 8
	veryLowPointsPenalty   = 15

	minTenureDays    = 90
	newHireReduction = 15

	riskHighThreshold   = 60
	riskMediumThreshold = 35
)

// RiskRunSummary is the aggregate outcome of one analyzer run.
type RiskRunSummary struct {
	AnalysisDate string
	Analyzed     int
	Failed       int
	HighRisk     int
	MediumRisk   int
	LowRisk      int
}

// RiskAnalyzer is the nightly batch that turns attendance, incident and
// point-balance history into a per-employee risk score. Every write is an
// upsert keyed by (user, date), so a run is idempotent and safe to
// repeat after a crash.
type RiskAnalyzer struct {
	userRepo     repository.UserRepository
	attRepo      repository.AttendanceRepository
	incidentRepo repository.IncidentRepository
	riskRepo     repository.RiskRepository
	dispatcher   *AlertDispatcher
	settings     repository.SettingRepository
	log          *logger.Logger
}

func NewRiskAnalyzer(userRepo repository.UserRepository, attRepo repository.AttendanceRepository, incidentRepo repository.IncidentRepository, riskRepo repository.RiskRepository, dispatcher *AlertDispatcher, settings repository.SettingRepository, log *logger.Logger) *RiskAnalyzer {
	return &RiskAnalyzer{
		userRepo:     userRepo,
		attRepo:      attRepo,
		incidentRepo: incidentRepo,
		riskRepo:     riskRepo,
		dispatcher:   dispatcher,
		settings:     settings,
		log:          log,
	}
}

// Run analyzes every active non-managerial employee for the given date.
// Failing to enumerate employees is fatal; a failure inside a single
// employee's analysis is logged and the run moves on.
func (a *RiskAnalyzer) Run(analysisDate time.Time) (*RiskRunSummary, error) {
	users, err := a.userRepo.ListActiveNonManagerial()
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}

	lookback := a.settings.GetInt(model.SettingLookbackDays, defaultLookbackDays)
	summary := &RiskRunSummary{AnalysisDate: analysisDate.Format(dateLayout)}

	for i := range users {
		user := &users[i]
		level, err := a.analyzeOne(user, analysisDate, lookback)
		if err != nil {
			summary.Failed++
			a.log.Error("risk analysis failed for employee",
				"user_id", user.ID, "employee_no", user.EmployeeNo, "error", err)
			continue
		}
		summary.Analyzed++
		switch level {
		case model.RiskHigh:
			summary.HighRisk++
		case model.RiskMedium:
			summary.MediumRisk++
		default:
			summary.LowRisk++
		}
	}

	a.log.Info("risk analysis run complete",
		"analysis_date", summary.AnalysisDate,
		"analyzed", summary.Analyzed, "failed", summary.Failed,
		"high", summary.HighRisk, "medium", summary.MediumRisk, "low", summary.LowRisk)
	return summary, nil
}

func (a *RiskAnalyzer) analyzeOne(user *model.User, analysisDate time.Time, lookbackDays int) (level string, err error) {
	// One misbehaving employee record must not take the batch down.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during analysis: %v", r)
		}
	}()

	windowStart := analysisDate.AddDate(0, 0, -lookbackDays)
	records, err := a.attRepo.ListForUserSince(user.ID, windowStart.Format(dateLayout))
	if err != nil {
		return "", fmt.Errorf("loading attendance: %w", err)
	}

	agg := aggregateAttendance(records, analysisDate)

	incidents, err := a.incidentRepo.CountForUserSince(user.ID, windowStart)
	if err != nil {
		return "", fmt.Errorf("counting incidents: %w", err)
	}

	tenureDays := user.TenureDays(analysisDate)

	score := 0.0
	var factors []string

	// Lateness and absence are the backbone of the score.
	lateScore := agg.lateRate * 0.3
	if lateScore > 30 {
		lateScore = 30
	}
	if agg.lateCount > 0 {
		factors = append(factors, fmt.Sprintf("late on %d of %d recorded days (%.0f%%)",
			agg.lateCount, agg.total, agg.lateRate))
	}
	score += lateScore

	absentScore := agg.absentRate * 0.5
	if absentScore > 25 {
		absentScore = 25
	}
	if agg.absentCount > 0 {
		factors = append(factors, fmt.Sprintf("absent on %d of %d recorded days (%.0f%%)",
			agg.absentCount, agg.total, agg.absentRate))
	}
	score += absentScore

	if agg.severeLateDays > 0 {
		severeScore := float64(agg.severeLateDays * 2)
		if severeScore > 10 {
			severeScore = 10
		}
		score += severeScore
		factors = append(factors, fmt.Sprintf("%d days more than %d minutes late",
			agg.severeLateDays, severeLateMinutes))
	}

	// Trend: recent week vs the rest of the window.
	trend, trendScore := agg.trend()
	score += trendScore
	switch trend {
	case model.TrendDeclining:
		factors = append(factors, fmt.Sprintf("lateness trending worse (+%.0f min avg over last %d days)",
			agg.recentAvgLate-agg.earlierAvgLate, trendWindowDays))
	case model.TrendImproving:
		factors = append(factors, "lateness improving over the last week")
	}

	// Incidents carry a scaled penalty plus a flat one for repeaters.
	if incidents > 0 {
		incidentScore := float64(incidents * 3)
		if incidents > incidentRepeatThreshold {
			incidentScore += incidentRepeatPenalty
			factors = append(factors, fmt.Sprintf("repeated incidents: %d in the last %d days",
				incidents, lookbackDays))
		} else {
			factors = append(factors, fmt.Sprintf("%d incident(s) in the last %d days", incidents, lookbackDays))
		}
		score += incidentScore
	}

	// Point balance as a morale proxy.
	switch {
	case user.CurrentPoints < veryLowPointsThreshold:
		score += veryLowPointsPenalty
		factors = append(factors, fmt.Sprintf("point balance critically low (%d)", user.CurrentPoints))
	case user.CurrentPoints < lowPointsThreshold:
		score += lowPointsPenalty
		factors = append(factors, fmt.Sprintf("point balance low (%d)", user.CurrentPoints))
	}

	// New hires generate onboarding noise, not risk signal.
	if tenureDays > 0 && tenureDays < minTenureDays {
		score -= newHireReduction
		factors = append(factors, fmt.Sprintf("tenure under %d days, score dampened", minTenureDays))
	}

	riskScore := clampScore(score)
	level = riskLevelFor(riskScore)

	if agg.worstWeekday != "" {
		factors = append(factors, fmt.Sprintf("worst weekday: %s (avg %.0f min late)",
			agg.worstWeekday, agg.worstWeekdayAvg))
	}

	resignation := a.resignationProbability(user, agg, trend, riskScore, level, tenureDays)

	rs := &model.RiskScore{
		UserID:                 user.ID,
		AnalysisDate:           analysisDate.Format(dateLayout),
		RiskScore:              riskScore,
		RiskLevel:              level,
		ResignationProbability: resignation,
		LateRate:               agg.lateRate,
		AbsentRate:             agg.absentRate,
		TrendDirection:         trend,
		WorstWeekday:           agg.worstWeekday,
		LookbackDays:           lookbackDays,
	}
	rs.SetRiskFactors(factors)

	if err := a.riskRepo.UpsertScore(rs); err != nil {
		return "", fmt.Errorf("saving risk score: %w", err)
	}
	if err := a.userRepo.UpdateRiskSummary(user.ID, level, trend, resignation); err != nil {
		return "", fmt.Errorf("updating risk summary: %w", err)
	}

	if level == model.RiskHigh {
		a.alertManagers(user, rs, factors)
	}
	return level, nil
}

// resignationProbability is a heuristic indicator, not a calibrated
// probability: a handful of fixed increments for patterns that tend to
// precede resignations, capped to 0..100.
func (a *RiskAnalyzer) resignationProbability(user *model.User, agg attendanceAggregate, trend string, riskScore int, level string, tenureDays int) int {
	p := 0
	if tenureDays > 365 && agg.overtimeMinutes < 300 {
		p += 25 // long tenure, no longer putting in extra time
	}
	if trend == model.TrendDeclining && riskScore >= riskMediumThreshold {
		p += 25
	}
	if user.CurrentPoints < lowPointsThreshold && tenureDays > 180 {
		p += 20
	}
	if tenureDays > 730 && level == model.RiskHigh {
		p += 20
	}
	if p > 100 {
		p = 100
	}
	return p
}

// alertManagers sends one urgent alert per responsible manager. Dispatch
// is best-effort and never fails the analysis.
func (a *RiskAnalyzer) alertManagers(user *model.User, rs *model.RiskScore, factors []string) {
	branchID := uint(0)
	if user.BranchID != nil {
		branchID = *user.BranchID
	}
	managers, err := a.userRepo.ListManagersFor(branchID)
	if err != nil {
		a.log.Error("could not resolve managers for high-risk alert",
			"user_id", user.ID, "branch_id", branchID, "error", err)
		return
	}

	name := user.Name
	if name == "" {
		name = user.EmployeeNo
	}
	body := fmt.Sprintf("%s scored %d/100 (high risk). Factors: %s",
		name, rs.RiskScore, strings.Join(factors, "; "))

	for _, m := range managers {
		a.dispatcher.Dispatch(
			model.ScopeUser, m.ID,
			model.SeverityUrgent,
			"High attendance risk detected",
			body,
			map[string]interface{}{
				"subject_user_id": user.ID,
				"risk_score":      rs.RiskScore,
				"risk_level":      rs.RiskLevel,
				"trend":           rs.TrendDirection,
				"risk_factors":    factors,
				"analysis_date":   rs.AnalysisDate,
			},
		)
	}
}

// attendanceAggregate holds the per-window counters the score is built
// from.
type attendanceAggregate struct {
	total          int
	presentCount   int
	lateCount      int
	absentCount    int
	lateRate       float64
	absentRate     float64
	avgLateMinutes float64
	maxLateMinutes int
	severeLateDays int

	overtimeMinutes int
	penaltyPoints   int

	recentAvgLate  float64
	earlierAvgLate float64

	worstWeekday    string
	worstWeekdayAvg float64
}

func aggregateAttendance(records []model.AttendanceRecord, analysisDate time.Time) attendanceAggregate {
	agg := attendanceAggregate{total: len(records)}
	if agg.total == 0 {
		return agg
	}

	recentCutoff := analysisDate.AddDate(0, 0, -trendWindowDays).Format(dateLayout)

	lateSum := 0
	recentLateSum, recentDays := 0, 0
	earlierLateSum, earlierDays := 0, 0
	weekdaySum := map[time.Weekday]int{}
	weekdayDays := map[time.Weekday]int{}

	for i := range records {
		rec := &records[i]
		switch rec.Status {
		case model.StatusLate:
			agg.lateCount++
		case model.StatusAbsent:
			agg.absentCount++
		default:
			agg.presentCount++
		}

		lateSum += rec.LateMinutes
		if rec.LateMinutes > agg.maxLateMinutes {
			agg.maxLateMinutes = rec.LateMinutes
		}
		if rec.LateMinutes > severeLateMinutes {
			agg.severeLateDays++
		}
		agg.overtimeMinutes += rec.OvertimeMinutes
		agg.penaltyPoints += rec.PenaltyPoints

		if rec.Date >= recentCutoff {
			recentLateSum += rec.LateMinutes
			recentDays++
		} else {
			earlierLateSum += rec.LateMinutes
			earlierDays++
		}

		if day, err := time.Parse(dateLayout, rec.Date); err == nil {
			wd := day.Weekday()
			weekdaySum[wd] += rec.LateMinutes
			weekdayDays[wd]++
		}
	}

	agg.lateRate = float64(agg.lateCount) / float64(agg.total) * 100
	agg.absentRate = float64(agg.absentCount) / float64(agg.total) * 100
	agg.avgLateMinutes = float64(lateSum) / float64(agg.total)

	if recentDays > 0 {
		agg.recentAvgLate = float64(recentLateSum) / float64(recentDays)
	}
	if earlierDays > 0 {
		agg.earlierAvgLate = float64(earlierLateSum) / float64(earlierDays)
	}

	// Worst weekday is reported as a factor only; it never feeds the
	// score itself.
	for wd, days := range weekdayDays {
		avg := float64(weekdaySum[wd]) / float64(days)
		if avg > agg.worstWeekdayAvg {
			agg.worstWeekdayAvg = avg
			agg.worstWeekday = wd.String()
		}
	}
	return agg
}

// trend classifies the last week against the rest of the window and
// returns the bounded score contribution.
func (agg attendanceAggregate) trend() (string, float64) {
	delta := agg.recentAvgLate - agg.earlierAvgLate
	switch {
	case delta > trendThresholdMin:
		score := delta * 2
		if score > trendScoreCap {
			score = trendScoreCap
		}
		return model.TrendDeclining, score
	case delta < -trendThresholdMin:
		score := delta * 2
		if score < trendScoreFloor {
			score = trendScoreFloor
		}
		return model.TrendImproving, score
	default:
		return model.TrendStable, 0
	}
}

func clampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}

func riskLevelFor(score int) string {
	switch {
	case score >= riskHighThreshold:
		return model.RiskHigh
	case score >= riskMediumThreshold:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
