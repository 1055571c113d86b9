package handlers

import (
	"log/slog"
	"net/http"

	"renewal-service/internal/models"
	"renewal-service/internal/services"
	"renewal-service/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type QuoteHandler struct {
	quoteService *services.QuoteService
}

func NewQuoteHandler(quoteService *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func (h *QuoteHandler) Register(app *fiber.App) {
	api := app.Group("renewal/api/v1")

	quoteGroup := api.Group("/renewals/:renewal_id/quotes")
	quoteGroup.Post("/", h.SubmitQuote)                  // POST /renewals/:renewal_id/quotes - Record a carrier quote
	quoteGroup.Post("/:quote_id/select", h.SelectQuote)  // POST /renewals/:renewal_id/quotes/:quote_id/select - Pick one quote
	api.Get("/renewals/:renewal_id/comparison", h.CompareQuotes) // GET /renewals/:renewal_id/comparison - Side-by-side comparison
}

// SubmitQuote records a carrier quote against a renewal and returns it with
// the computed price change.
func (h *QuoteHandler) SubmitQuote(c fiber.Ctx) error {
	renewalID, err := uuid.Parse(c.Params("renewal_id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid renewal ID"))
	}

	var req models.SubmitQuoteRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing quote request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}

	quote, err := h.quoteService.SubmitQuote(c.Context(), renewalID, req)
	if err != nil {
		slog.Warn("Quote submission rejected", "renewal_id", renewalID, "carrier", req.Carrier, "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("QUOTE_REJECTED", err.Error()))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(quote))
}

// CompareQuotes returns the renewal's quotes side by side against the
// expiring policy's premium.
func (h *QuoteHandler) CompareQuotes(c fiber.Ctx) error {
	renewalID, err := uuid.Parse(c.Params("renewal_id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid renewal ID"))
	}

	result, err := h.quoteService.CompareQuotes(c.Context(), renewalID)
	if err != nil {
		slog.Warn("Quote comparison failed", "renewal_id", renewalID, "error", err)
		return c.Status(http.StatusNotFound).JSON(
			utils.CreateErrorResponse("COMPARISON_UNAVAILABLE", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(result))
}

// SelectQuote marks one quote as chosen and clears the selection flag on
// its siblings.
func (h *QuoteHandler) SelectQuote(c fiber.Ctx) error {
	renewalID, err := uuid.Parse(c.Params("renewal_id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid renewal ID"))
	}
	quoteID, err := uuid.Parse(c.Params("quote_id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid quote ID"))
	}

	quote, err := h.quoteService.SelectQuote(c.Context(), renewalID, quoteID)
	if err != nil {
		slog.Warn("Quote selection failed", "renewal_id", renewalID, "quote_id", quoteID, "error", err)
		return c.Status(http.StatusNotFound).JSON(
			utils.CreateErrorResponse("SELECTION_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(quote))
}
