package repository

import (
	"errors"
	"time"

	"field-presence-backend/internal/model"

	"gorm.io/gorm"
)

type RiskRepository interface {
	UpsertScore(score *model.RiskScore) error
	GetScore(userID uint, analysisDate string) (*model.RiskScore, error)
	ListScoresByDate(analysisDate string, branchID *uint) ([]model.RiskScore, error)

	UpsertCoLateEdge(userA, userB uint, occurrences int, lastIncident time.Time) (*model.InfluenceEdge, error)
	GetEdge(userA, userB uint) (*model.InfluenceEdge, error)
	ListEdgesForUsers(userIDs []uint) ([]model.InfluenceEdge, error)
}

type riskRepository struct {
	db *gorm.DB
}

func NewRiskRepository(db *gorm.DB) RiskRepository {
	return &riskRepository{db}
}

// UpsertScore replaces the analysis row for (user, date) in place, so the
// nightly job can be re-run for the same day without piling up rows.
func (r *riskRepository) UpsertScore(score *model.RiskScore) error {
	var existing model.RiskScore
	err := r.db.Where("user_id = ? AND analysis_date = ?", score.UserID, score.AnalysisDate).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(score).Error
	}
	if err != nil {
		return err
	}
	score.ID = existing.ID
	score.CreatedAt = existing.CreatedAt
	return r.db.Save(score).Error
}

func (r *riskRepository) GetScore(userID uint, analysisDate string) (*model.RiskScore, error) {
	var score model.RiskScore
	err := r.db.Where("user_id = ? AND analysis_date = ?", userID, analysisDate).
		First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *riskRepository) ListScoresByDate(analysisDate string, branchID *uint) ([]model.RiskScore, error) {
	q := r.db.Select("risk_scores.*").Where("analysis_date = ?", analysisDate)
	if branchID != nil {
		q = q.Joins("JOIN users ON users.id = risk_scores.user_id").
			Where("users.branch_id = ?", *branchID)
	}
	var scores []model.RiskScore
	err := q.Order("risk_score desc").Find(&scores).Error
	return scores, err
}

// UpsertCoLateEdge accumulates evidence onto the canonical (low id, high
// id) pair. Strength is derived from the accumulated evidence count, so
// it can only grow until it saturates at 100.
func (r *riskRepository) UpsertCoLateEdge(userA, userB uint, occurrences int, lastIncident time.Time) (*model.InfluenceEdge, error) {
	if userA > userB {
		userA, userB = userB, userA
	}

	var edge model.InfluenceEdge
	err := r.db.Where("user_a_id = ? AND user_b_id = ?", userA, userB).First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		edge = model.InfluenceEdge{
			UserAID:          userA,
			UserBID:          userB,
			RelationshipType: model.RelationCoLate,
			EvidenceCount:    occurrences,
			LastIncident:     lastIncident,
		}
	} else if err != nil {
		return nil, err
	} else {
		edge.EvidenceCount += occurrences
		edge.LastIncident = lastIncident
	}

	edge.Strength = edge.EvidenceCount * 10
	if edge.Strength > 100 {
		edge.Strength = 100
	}

	if err := r.db.Save(&edge).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *riskRepository) GetEdge(userA, userB uint) (*model.InfluenceEdge, error) {
	if userA > userB {
		userA, userB = userB, userA
	}
	var edge model.InfluenceEdge
	err := r.db.Where("user_a_id = ? AND user_b_id = ?", userA, userB).First(&edge).Error
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *riskRepository) ListEdgesForUsers(userIDs []uint) ([]model.InfluenceEdge, error) {
	var edges []model.InfluenceEdge
	err := r.db.Where("user_a_id IN ? OR user_b_id IN ?", userIDs, userIDs).
		Order("strength desc").Find(&edges).Error
	return edges, err
}
