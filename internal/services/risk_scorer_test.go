package services

import (
	"strings"
	"testing"
	"time"

	"renewal-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST SUITE 1: RISK LEVEL BANDS
// ============================================================================

func TestScore_LevelBands(t *testing.T) {
	scorer := NewRiskScorer(DefaultRiskConfig())

	tests := []struct {
		name          string
		policyType    models.PolicyType
		premium       int64
		daysUntil     int
		expectedLevel models.RiskLevel
		expectedPts   int
	}{
		{"low risk far out small premium", models.PolicyTypeProperty, 10000, 120, models.RiskLow, 0},
		{"approaching window only", models.PolicyTypeProperty, 10000, 45, models.RiskLow, 10},
		{"urgent window reaches medium", models.PolicyTypeProperty, 10000, 30, models.RiskMedium, 25},
		{"critical window reaches medium", models.PolicyTypeProperty, 10000, 14, models.RiskMedium, 40},
		{"critical plus mid premium reaches high", models.PolicyTypeProperty, 50000, 10, models.RiskHigh, 50},
		{"complex type alone stays low", models.PolicyTypeCyberLiability, 10000, 60, models.RiskLow, 15},
		{"complex plus approaching sits exactly on the medium floor", models.PolicyTypeCyberLiability, 10000, 40, models.RiskMedium, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scorer.Score(tt.policyType, decimal.NewFromInt(tt.premium), tt.daysUntil)
			assert.Equal(t, tt.expectedLevel, result.Level)
			assert.Equal(t, tt.expectedPts, result.Points)
		})
	}
}

func TestScore_CyberScenario(t *testing.T) {
	// 120k cyber policy expiring in 10 days: 40 time + 20 premium + 15
	// complexity = 75 points, high.
	scorer := NewRiskScorer(DefaultRiskConfig())

	result := scorer.Score(models.PolicyTypeCyberLiability, decimal.NewFromInt(120000), 10)

	assert.Equal(t, 75, result.Points)
	assert.Equal(t, models.RiskHigh, result.Level)
	assert.Len(t, result.Factors, 3)
}

func TestScore_CriticalTimeContribution(t *testing.T) {
	scorer := NewRiskScorer(DefaultRiskConfig())

	for _, days := range []int{14, 7, 1, 0, -3} {
		result := scorer.Score(models.PolicyTypeProperty, decimal.NewFromInt(1000), days)

		assert.GreaterOrEqual(t, result.Points, 40, "days=%d must carry the critical contribution", days)
		assert.NotEqual(t, models.RiskLow, result.Level, "days=%d must be at least medium", days)
	}
}

// ============================================================================
// TEST SUITE 2: FACTOR STRINGS
// ============================================================================

func TestScore_LargeAccountFactor(t *testing.T) {
	scorer := NewRiskScorer(DefaultRiskConfig())

	for _, premium := range []int64{100000, 250000, 1000000} {
		result := scorer.Score(models.PolicyTypeProperty, decimal.NewFromInt(premium), 90)

		found := false
		for _, factor := range result.Factors {
			if strings.Contains(factor, "Large account") {
				found = true
			}
		}
		assert.True(t, found, "premium %d must produce the large account factor", premium)
	}
}

func TestScore_FallbackFactor(t *testing.T) {
	scorer := NewRiskScorer(DefaultRiskConfig())

	result := scorer.Score(models.PolicyTypeProperty, decimal.NewFromInt(5000), 120)

	assert.Equal(t, []string{"Standard renewal, no elevated risk factors"}, result.Factors)
	assert.Equal(t, models.RiskLow, result.Level)
}

func TestScore_AlwaysAtLeastOneFactor(t *testing.T) {
	scorer := NewRiskScorer(DefaultRiskConfig())

	tests := []struct {
		premium   int64
		daysUntil int
	}{
		{0, 365}, {5000, 46}, {24999, 100}, {100000, 5}, {1, -30},
	}

	for _, tt := range tests {
		result := scorer.Score(models.PolicyTypeUmbrella, decimal.NewFromInt(tt.premium), tt.daysUntil)
		assert.NotEmpty(t, result.Factors)
	}
}

// ============================================================================
// TEST SUITE 3: COMPLEX POLICY TYPES
// ============================================================================

func TestIsComplexPolicyType(t *testing.T) {
	complex := []models.PolicyType{
		models.PolicyTypeCyberLiability,
		models.PolicyTypeDirectorsAndOfficers,
		models.PolicyTypeProfessionalLiability,
	}
	standard := []models.PolicyType{
		models.PolicyTypeGeneralLiability,
		models.PolicyTypeProperty,
		models.PolicyTypeWorkersCompensation,
		models.PolicyTypeCommercialAuto,
		models.PolicyTypeUmbrella,
	}

	for _, pt := range complex {
		assert.True(t, IsComplexPolicyType(pt), "%s should be complex", pt)
	}
	for _, pt := range standard {
		assert.False(t, IsComplexPolicyType(pt), "%s should not be complex", pt)
	}
}

// ============================================================================
// TEST SUITE 4: DAY ARITHMETIC
// ============================================================================

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		until    time.Time
		expected int
	}{
		{"same instant", now, 0},
		{"later today rounds up", now.Add(6 * time.Hour), 1},
		{"exactly ten days", now.AddDate(0, 0, 10), 10},
		{"ten and a half days rounds up", now.Add(10*24*time.Hour + 12*time.Hour), 11},
		{"past due is negative", now.Add(-36 * time.Hour), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysUntil(now, tt.until))
		})
	}
}
