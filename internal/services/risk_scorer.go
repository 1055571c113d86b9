package services

import (
	"fmt"
	"math"
	"time"

	"renewal-service/internal/models"

	"github.com/shopspring/decimal"
)

// RiskConfig holds every threshold and point value the scorer uses. The
// defaults match the brokerage's standing guidelines; operators override
// them through the environment, never by editing the scorer.
type RiskConfig struct {
	TimeCriticalDays    int
	TimeUrgentDays      int
	TimeApproachingDays int

	TimeCriticalPoints    int
	TimeUrgentPoints      int
	TimeApproachingPoints int

	PremiumLargeThreshold decimal.Decimal
	PremiumMidThreshold   decimal.Decimal
	PremiumSmallThreshold decimal.Decimal

	PremiumLargePoints int
	PremiumMidPoints   int
	PremiumSmallPoints int

	ComplexTypePoints int

	HighLevelFloor   int
	MediumLevelFloor int
}

func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		TimeCriticalDays:      14,
		TimeUrgentDays:        30,
		TimeApproachingDays:   45,
		TimeCriticalPoints:    40,
		TimeUrgentPoints:      25,
		TimeApproachingPoints: 10,
		PremiumLargeThreshold: decimal.NewFromInt(100000),
		PremiumMidThreshold:   decimal.NewFromInt(50000),
		PremiumSmallThreshold: decimal.NewFromInt(25000),
		PremiumLargePoints:    20,
		PremiumMidPoints:      10,
		PremiumSmallPoints:    5,
		ComplexTypePoints:     15,
		HighLevelFloor:        50,
		MediumLevelFloor:      25,
	}
}

// RiskAssessment is the scorer's output: a coarse level plus the factor
// strings shown to brokers.
type RiskAssessment struct {
	Level   models.RiskLevel `json:"level"`
	Points  int              `json:"points"`
	Factors []string         `json:"factors"`
}

// RiskScorer classifies how much attention a renewal needs from time
// pressure, premium size and line-of-business complexity. Pure and
// side-effect-free.
type RiskScorer struct {
	cfg RiskConfig
}

func NewRiskScorer(cfg RiskConfig) *RiskScorer {
	return &RiskScorer{cfg: cfg}
}

func (s *RiskScorer) Score(policyType models.PolicyType, premium decimal.Decimal, daysUntilExpiry int) RiskAssessment {
	points := 0
	factors := make([]string, 0, 3)

	// Time pressure. Negative days (already past due) land in the critical
	// band.
	switch {
	case daysUntilExpiry <= s.cfg.TimeCriticalDays:
		points += s.cfg.TimeCriticalPoints
		factors = append(factors, fmt.Sprintf("Critical time pressure: %d days until expiration", daysUntilExpiry))
	case daysUntilExpiry <= s.cfg.TimeUrgentDays:
		points += s.cfg.TimeUrgentPoints
		factors = append(factors, fmt.Sprintf("Urgent: expires in %d days", daysUntilExpiry))
	case daysUntilExpiry <= s.cfg.TimeApproachingDays:
		points += s.cfg.TimeApproachingPoints
		factors = append(factors, fmt.Sprintf("Renewal window approaching: %d days until expiration", daysUntilExpiry))
	}

	// Premium size.
	switch {
	case premium.GreaterThanOrEqual(s.cfg.PremiumLargeThreshold):
		points += s.cfg.PremiumLargePoints
		factors = append(factors, fmt.Sprintf("Large account: %s premium", formatPremium(premium)))
	case premium.GreaterThanOrEqual(s.cfg.PremiumMidThreshold):
		points += s.cfg.PremiumMidPoints
		factors = append(factors, fmt.Sprintf("Sizable account: %s premium", formatPremium(premium)))
	case premium.GreaterThanOrEqual(s.cfg.PremiumSmallThreshold):
		points += s.cfg.PremiumSmallPoints
		factors = append(factors, fmt.Sprintf("Mid-market account: %s premium", formatPremium(premium)))
	}

	if IsComplexPolicyType(policyType) {
		points += s.cfg.ComplexTypePoints
		factors = append(factors, fmt.Sprintf("Complex coverage line: %s requires specialist markets", policyType))
	}

	if len(factors) == 0 {
		factors = append(factors, "Standard renewal, no elevated risk factors")
	}

	return RiskAssessment{
		Level:   s.level(points),
		Points:  points,
		Factors: factors,
	}
}

func (s *RiskScorer) level(points int) models.RiskLevel {
	switch {
	case points >= s.cfg.HighLevelFloor:
		return models.RiskHigh
	case points >= s.cfg.MediumLevelFloor:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// IsComplexPolicyType reports whether a line of business carries the
// complexity surcharge.
func IsComplexPolicyType(policyType models.PolicyType) bool {
	switch policyType {
	case models.PolicyTypeCyberLiability,
		models.PolicyTypeDirectorsAndOfficers,
		models.PolicyTypeProfessionalLiability:
		return true
	case models.PolicyTypeGeneralLiability,
		models.PolicyTypeProperty,
		models.PolicyTypeWorkersCompensation,
		models.PolicyTypeCommercialAuto,
		models.PolicyTypeUmbrella:
		return false
	default:
		return false
	}
}

func formatPremium(premium decimal.Decimal) string {
	return "$" + premium.StringFixed(0)
}

const millisPerDay = 24 * 60 * 60 * 1000

// DaysUntil computes whole days between two instants, rounding partial days
// up. A policy expiring later today still counts as one day out; a policy
// past due comes back negative or zero.
func DaysUntil(from, until time.Time) int {
	diff := until.Sub(from).Milliseconds()
	return int(math.Ceil(float64(diff) / float64(millisPerDay)))
}
