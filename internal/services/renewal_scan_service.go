package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ScanResult aggregates one expiring-policy scan. Per-item failures land in
// Errors with the offending policy number; a failure of the candidate query
// itself produces a single top-level entry.
type ScanResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// RenewalScanService is the batch driver: it finds candidate policies and
// drives the opener per candidate, isolating per-item failures.
type RenewalScanService struct {
	policies      PolicyStore
	opener        *RenewalOpener
	lookaheadDays int
	now           func() time.Time
}

func NewRenewalScanService(policies PolicyStore, opener *RenewalOpener, lookaheadDays int) *RenewalScanService {
	if lookaheadDays <= 0 {
		lookaheadDays = 90
	}
	return &RenewalScanService{
		policies:      policies,
		opener:        opener,
		lookaheadDays: lookaheadDays,
		now:           time.Now,
	}
}

// RunExpiringPolicyScan opens renewals for active policies expiring within
// the lookahead window. lookaheadDays <= 0 selects the configured default.
// One bad policy never aborts the batch.
func (s *RenewalScanService) RunExpiringPolicyScan(ctx context.Context, lookaheadDays int) ScanResult {
	if lookaheadDays <= 0 {
		lookaheadDays = s.lookaheadDays
	}

	start := s.now()
	windowEnd := start.AddDate(0, 0, lookaheadDays)
	result := ScanResult{Errors: make([]string, 0)}

	slog.Info("Starting expiring-policy scan",
		"lookahead_days", lookaheadDays,
		"window_end", windowEnd)

	candidates, err := s.policies.FindExpiringActive(ctx, windowEnd)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("expiring policy query failed: %v", err))
		slog.Error("Expiring-policy scan aborted", "error", err)
		return result
	}

	for _, policy := range candidates {
		outcome, err := s.opener.OpenForPolicy(ctx, policy)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("policy %s: %v", policy.PolicyNumber, err))
			slog.Error("Failed to process expiring policy",
				"policy_number", policy.PolicyNumber,
				"error", err)
			continue
		}

		switch outcome {
		case OutcomeCreated:
			result.Created++
		case OutcomeSkipped:
			result.Skipped++
		}
	}

	slog.Info("Expiring-policy scan completed",
		"candidates", len(candidates),
		"created", result.Created,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
		"duration", time.Since(start))

	return result
}
