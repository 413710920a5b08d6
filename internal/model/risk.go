package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Risk levels.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Trend directions.
const (
	TrendDeclining = "declining"
	TrendStable    = "stable"
	TrendImproving = "improving"
)

// RiskScore is one analysis result per employee per day. Re-running the
// analyzer for the same date overwrites the row in place.
type RiskScore struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"uniqueIndex:idx_risk_user_date;not null"`
	AnalysisDate string `json:"analysis_date" gorm:"uniqueIndex:idx_risk_user_date;not null"`

	RiskScore              int     `json:"risk_score"`
	RiskLevel              string  `json:"risk_level"`
	ResignationProbability int     `json:"resignation_probability"`
	LateRate               float64 `json:"late_rate"`
	AbsentRate             float64 `json:"absent_rate"`
	TrendDirection         string  `json:"trend_direction"`
	WorstWeekday           string  `json:"worst_weekday"`
	LookbackDays           int     `json:"lookback_days"`

	// Ordered list of human-readable reasons, JSON-encoded at the
	// persistence boundary only.
	RiskFactorsJSON string `json:"-" gorm:"column:risk_factors"`
}

func (r *RiskScore) SetRiskFactors(factors []string) {
	b, err := json.Marshal(factors)
	if err != nil {
		r.RiskFactorsJSON = "[]"
		return
	}
	r.RiskFactorsJSON = string(b)
}

func (r *RiskScore) RiskFactors() []string {
	var factors []string
	if err := json.Unmarshal([]byte(r.RiskFactorsJSON), &factors); err != nil {
		return nil
	}
	return factors
}

// InfluenceEdge links two employees whose lateness co-occurs. Purely
// correlational bookkeeping: a co_late edge says the two are often late
// on the same days, nothing about who influences whom. UserAID < UserBID
// so the unordered pair has one canonical row.
type InfluenceEdge struct {
	gorm.Model
	UserAID uint `json:"user_a_id" gorm:"uniqueIndex:idx_influence_pair;not null"`
	UserBID uint `json:"user_b_id" gorm:"uniqueIndex:idx_influence_pair;not null"`

	RelationshipType string    `json:"relationship_type"`
	Strength         int       `json:"strength"`
	EvidenceCount    int       `json:"evidence_count"`
	LastIncident     time.Time `json:"last_incident"`
}

// Relationship types.
const RelationCoLate = "co_late"
