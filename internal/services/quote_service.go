package services

import (
	"context"
	"fmt"
	"log/slog"

	"renewal-service/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ComparedQuote pairs a quote with its price change against the expiring
// premium. PriceChange is nil when the expiring premium is zero.
type ComparedQuote struct {
	Quote       models.Quote     `json:"quote"`
	PriceChange *decimal.Decimal `json:"price_change,omitempty"`
}

// ComparisonResult is the comparator's output for one renewal's quote set.
type ComparisonResult struct {
	RenewalID       uuid.UUID       `json:"renewal_id"`
	ExpiringPremium decimal.Decimal `json:"expiring_premium"`
	Quotes          []ComparedQuote `json:"quotes"`
	LowestPremium   decimal.Decimal `json:"lowest_premium"`
	HighestPremium  decimal.Decimal `json:"highest_premium"`
	AveragePremium  decimal.Decimal `json:"average_premium"`
	BestValue       *models.Quote   `json:"best_value,omitempty"`
}

// QuoteService handles quote intake, comparison and exclusive selection for
// a renewal.
type QuoteService struct {
	quotes   QuoteStore
	renewals RenewalStore
	policies PolicyStore
	activity ActivityLog
}

func NewQuoteService(quotes QuoteStore, renewals RenewalStore, policies PolicyStore, activity ActivityLog) *QuoteService {
	return &QuoteService{
		quotes:   quotes,
		renewals: renewals,
		policies: policies,
		activity: activity,
	}
}

// SubmitQuote records a carrier quote against a renewal, computes its price
// change against the expiring policy's premium and bumps the renewal's
// quote counter.
func (s *QuoteService) SubmitQuote(ctx context.Context, renewalID uuid.UUID, req models.SubmitQuoteRequest) (*models.Quote, error) {
	if req.Carrier == "" {
		return nil, fmt.Errorf("carrier is required")
	}
	if req.Premium.IsNegative() {
		return nil, fmt.Errorf("premium must not be negative")
	}

	renewal, err := s.renewals.GetByID(ctx, renewalID)
	if err != nil {
		return nil, err
	}

	policy, err := s.policies.GetByID(ctx, renewal.PolicyID)
	if err != nil {
		return nil, err
	}

	quote := &models.Quote{
		ID:                 uuid.New(),
		RenewalID:          renewalID,
		Carrier:            req.Carrier,
		Premium:            req.Premium,
		CoverageLimit:      req.CoverageLimit,
		Deductible:         req.Deductible,
		PerOccurrenceLimit: req.PerOccurrenceLimit,
		AggregateLimit:     req.AggregateLimit,
		Exclusions:         pq.StringArray(req.Exclusions),
		Endorsements:       pq.StringArray(req.Endorsements),
		PriceChange:        PriceChangePercent(policy.Premium, req.Premium),
		Status:             models.QuoteReceived,
	}

	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, err
	}

	if err := s.renewals.IncrementQuotesReceived(ctx, renewalID); err != nil {
		slog.Warn("Failed to bump quote counter", "renewal_id", renewalID, "error", err)
	}

	clientID := renewal.ClientID
	if err := s.activity.Append(ctx, &models.Activity{
		ID:          uuid.New(),
		ClientID:    &clientID,
		RenewalID:   &renewalID,
		Type:        models.ActivityQuoteReceived,
		Description: fmt.Sprintf("Quote received from %s at %s", req.Carrier, formatPremium(req.Premium)),
	}); err != nil {
		slog.Warn("Failed to log quote receipt", "renewal_id", renewalID, "error", err)
	}

	return quote, nil
}

// CompareQuotes builds the comparison for a renewal's current quote set
// against the expiring policy's premium.
func (s *QuoteService) CompareQuotes(ctx context.Context, renewalID uuid.UUID) (*ComparisonResult, error) {
	renewal, err := s.renewals.GetByID(ctx, renewalID)
	if err != nil {
		return nil, err
	}

	policy, err := s.policies.GetByID(ctx, renewal.PolicyID)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quotes.FindByRenewal(ctx, renewalID)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("renewal %s has no quotes to compare", renewalID)
	}

	result := CompareQuoteSet(policy.Premium, quotes)
	result.RenewalID = renewalID
	return &result, nil
}

// SelectQuote marks one quote as the chosen option and clears the selection
// on every sibling, atomically from the caller's perspective.
func (s *QuoteService) SelectQuote(ctx context.Context, renewalID, quoteID uuid.UUID) (*models.Quote, error) {
	if err := s.quotes.SelectExclusive(ctx, quoteID, renewalID); err != nil {
		return nil, err
	}

	quote, err := s.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if err := s.activity.Append(ctx, &models.Activity{
		ID:          uuid.New(),
		RenewalID:   &renewalID,
		Type:        models.ActivityQuoteSelected,
		Description: fmt.Sprintf("Quote from %s selected at %s", quote.Carrier, formatPremium(quote.Premium)),
	}); err != nil {
		slog.Warn("Failed to log quote selection", "quote_id", quoteID, "error", err)
	}

	return quote, nil
}

// CompareQuoteSet is the pure comparator: per-quote price change plus
// min/max/average premium and best value. Best value is the first quote
// carrying the minimal premium; encounter order breaks ties.
func CompareQuoteSet(expiringPremium decimal.Decimal, quotes []models.Quote) ComparisonResult {
	result := ComparisonResult{
		ExpiringPremium: expiringPremium,
		Quotes:          make([]ComparedQuote, 0, len(quotes)),
	}
	if len(quotes) == 0 {
		return result
	}

	sum := decimal.Zero
	best := 0
	for i, quote := range quotes {
		result.Quotes = append(result.Quotes, ComparedQuote{
			Quote:       quote,
			PriceChange: PriceChangePercent(expiringPremium, quote.Premium),
		})

		sum = sum.Add(quote.Premium)
		if quote.Premium.LessThan(quotes[best].Premium) {
			best = i
		}
	}

	lowest := quotes[best]
	result.LowestPremium = lowest.Premium
	result.HighestPremium = maxPremium(quotes)
	result.AveragePremium = sum.Div(decimal.NewFromInt(int64(len(quotes))))
	result.BestValue = &lowest

	return result
}

// PriceChangePercent computes (quote - expiring) / expiring * 100, or nil
// when the expiring premium is zero.
func PriceChangePercent(expiringPremium, quotePremium decimal.Decimal) *decimal.Decimal {
	if expiringPremium.IsZero() {
		return nil
	}
	change := quotePremium.Sub(expiringPremium).
		Div(expiringPremium).
		Mul(decimal.NewFromInt(100))
	return &change
}

func maxPremium(quotes []models.Quote) decimal.Decimal {
	max := quotes[0].Premium
	for _, quote := range quotes[1:] {
		if quote.Premium.GreaterThan(max) {
			max = quote.Premium
		}
	}
	return max
}
