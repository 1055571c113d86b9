package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"renewal-service/internal/models"

	"github.com/google/uuid"
)

const (
	ReasonNoQuotes         = "No quotes received"
	ReasonHighRiskNoRecent = "High risk with no recent activity"
)

// EscalationEntry is one renewal flagged for broker attention.
type EscalationEntry struct {
	RenewalID        uuid.UUID         `json:"renewal_id"`
	ClientName       string            `json:"client_name"`
	PolicyType       models.PolicyType `json:"policy_type"`
	DaysUntilDue     int               `json:"days_until_due"`
	RiskLevel        models.RiskLevel  `json:"risk_level"`
	Reason           string            `json:"reason"`
	OverdueTaskCount int               `json:"overdue_task_count"`
}

type EscalationConfig struct {
	WindowDays     int
	StaleAfterDays int
}

func DefaultEscalationConfig() EscalationConfig {
	return EscalationConfig{
		WindowDays:     30,
		StaleAfterDays: 7,
	}
}

// EscalationService is a read-only query over renewal, risk and task state.
// A renewal escalates when it is open, due inside the window, and either
// has no quotes yet or is high risk with no recent activity.
type EscalationService struct {
	renewals RenewalStore
	cfg      EscalationConfig
	now      func() time.Time
}

func NewEscalationService(renewals RenewalStore, cfg EscalationConfig) *EscalationService {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 30
	}
	if cfg.StaleAfterDays <= 0 {
		cfg.StaleAfterDays = 7
	}
	return &EscalationService{
		renewals: renewals,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *EscalationService) ListEscalations(ctx context.Context) ([]EscalationEntry, error) {
	now := s.now()
	windowEnd := now.AddDate(0, 0, s.cfg.WindowDays)

	candidates, err := s.renewals.ListEscalationCandidates(ctx, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list escalation candidates: %w", err)
	}

	staleCutoff := now.AddDate(0, 0, -s.cfg.StaleAfterDays)
	entries := make([]EscalationEntry, 0, len(candidates))

	for _, c := range candidates {
		reason, ok := s.qualify(c, staleCutoff)
		if !ok {
			continue
		}

		entries = append(entries, EscalationEntry{
			RenewalID:        c.RenewalID,
			ClientName:       c.ClientName,
			PolicyType:       c.PolicyType,
			DaysUntilDue:     DaysUntil(now, c.DueDate),
			RiskLevel:        c.RiskLevel,
			Reason:           reason,
			OverdueTaskCount: c.OverdueTaskCount,
		})
	}

	// Most urgent first.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysUntilDue < entries[j].DaysUntilDue
	})

	slog.Info("Escalation list computed",
		"candidates", len(candidates),
		"escalations", len(entries))
	return entries, nil
}

// qualify applies the escalation rules. Missing quotes wins the reported
// reason when both conditions hold.
func (s *EscalationService) qualify(c models.EscalationCandidate, staleCutoff time.Time) (string, bool) {
	if c.QuotesReceived == 0 {
		return ReasonNoQuotes, true
	}
	if c.RiskLevel == models.RiskHigh && c.LastTouchedAt.Before(staleCutoff) {
		return ReasonHighRiskNoRecent, true
	}
	return "", false
}
