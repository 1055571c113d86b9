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

type RenewalHandler struct {
	scanService       *services.RenewalScanService
	taskService       *services.TaskService
	escalationService *services.EscalationService
	lifecycleService  *services.RenewalLifecycleService
	riskScorer        *services.RiskScorer
}

func NewRenewalHandler(
	scanService *services.RenewalScanService,
	taskService *services.TaskService,
	escalationService *services.EscalationService,
	lifecycleService *services.RenewalLifecycleService,
	riskScorer *services.RiskScorer,
) *RenewalHandler {
	return &RenewalHandler{
		scanService:       scanService,
		taskService:       taskService,
		escalationService: escalationService,
		lifecycleService:  lifecycleService,
		riskScorer:        riskScorer,
	}
}

func (h *RenewalHandler) Register(app *fiber.App) {
	api := app.Group("renewal/api/v1")

	// Renewal lifecycle routes
	renewalGroup := api.Group("/renewals")
	renewalGroup.Post("/scan", h.RunScan)                          // POST /renewals/scan - Open renewals for expiring policies
	renewalGroup.Get("/escalations", h.ListEscalations)            // GET /renewals/escalations - Renewals needing broker attention
	renewalGroup.Get("/:renewal_id", h.GetRenewal)                 // GET /renewals/:renewal_id - One renewal
	renewalGroup.Get("/:renewal_id/tasks", h.ListTasks)            // GET /renewals/:renewal_id/tasks - Checklist for one renewal
	renewalGroup.Patch("/:renewal_id/status", h.UpdateRenewalStatus) // PATCH /renewals/:renewal_id/status - Broker transition
	api.Get("/clients/:client_id/renewals", h.ListClientRenewals)  // GET /clients/:client_id/renewals

	// Task routes
	taskGroup := api.Group("/tasks")
	taskGroup.Post("/sweep-overdue", h.SweepOverdue)        // POST /tasks/sweep-overdue - Flag past-due open tasks
	taskGroup.Patch("/:task_id/status", h.UpdateTaskStatus) // PATCH /tasks/:task_id/status - Manual status transition

	// Risk routes
	api.Post("/risk/score", h.ScoreRisk) // POST /risk/score - Score a hypothetical renewal
}

// ============================================================================
// SCAN AND SWEEP OPERATIONS
// ============================================================================

// RunScan opens renewals for every active policy expiring inside the
// lookahead window. One bad policy never aborts the batch; its error is
// reported alongside the counts.
func (h *RenewalHandler) RunScan(c fiber.Ctx) error {
	var req models.RunScanRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			slog.Error("error parsing scan request", "error", err)
			return c.Status(http.StatusBadRequest).JSON(
				utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
		}
	}
	if req.LookaheadDays < 0 {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("VALIDATION_FAILED", "lookahead_days must not be negative"))
	}

	result := h.scanService.RunExpiringPolicyScan(c.Context(), req.LookaheadDays)

	slog.Info("Expiring policy scan finished",
		"created", result.Created,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(result))
}

// SweepOverdue transitions every past-due pending or in-progress task to
// overdue and reports how many changed.
func (h *RenewalHandler) SweepOverdue(c fiber.Ctx) error {
	count, err := h.taskService.SweepOverdueTasks(c.Context())
	if err != nil {
		slog.Error("Overdue sweep failed", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("SWEEP_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"transitioned": count,
	}))
}

// ============================================================================
// ESCALATIONS
// ============================================================================

// ListEscalations returns the renewals needing broker attention, most
// urgent first.
func (h *RenewalHandler) ListEscalations(c fiber.Ctx) error {
	entries, err := h.escalationService.ListEscalations(c.Context())
	if err != nil {
		slog.Error("Failed to list escalations", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("ESCALATION_QUERY_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"escalations": entries,
		"count":       len(entries),
	}))
}

// ============================================================================
// RENEWAL LIFECYCLE
// ============================================================================

func (h *RenewalHandler) GetRenewal(c fiber.Ctx) error {
	renewalID, err := uuid.Parse(c.Params("renewal_id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid renewal ID"))
	}

	renewal, err := h.lifecycleService.GetRenewal(c.Context(), renewalID)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(
			utils.CreateErrorResponse("RENEWAL_NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(renewal))
}

func (h *RenewalHandler) ListClientRenewals(c fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("client_id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid client ID"))
	}

	renewals, err := h.lifecycleService.ListClientRenewals(c.Context(), clientID)
	if err != nil {
		slog.Error("Failed to list client renewals", "client_id", clientID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RENEWAL_QUERY_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"client_id": clientID,
		"renewals":  renewals,
	}))
}

// UpdateRenewalStatus applies a broker-driven renewal transition. Pending
// and quoted are engine-assigned and rejected here.
func (h *RenewalHandler) UpdateRenewalStatus(c fiber.Ctx) error {
	renewalID, err := uuid.Parse(c.Params("renewal_id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid renewal ID"))
	}

	var req models.UpdateRenewalStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}

	renewal, err := h.lifecycleService.UpdateStatus(c.Context(), renewalID, req.Status)
	if err != nil {
		slog.Warn("Renewal status update rejected", "renewal_id", renewalID, "status", req.Status, "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("RENEWAL_UPDATE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(renewal))
}

// ============================================================================
// TASK OPERATIONS
// ============================================================================

// ListTasks returns the checklist for one renewal in checklist order.
func (h *RenewalHandler) ListTasks(c fiber.Ctx) error {
	renewalID, err := uuid.Parse(c.Params("renewal_id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid renewal ID"))
	}

	tasks, err := h.taskService.ListRenewalTasks(c.Context(), renewalID)
	if err != nil {
		slog.Error("Failed to list renewal tasks", "renewal_id", renewalID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("TASK_QUERY_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"renewal_id": renewalID,
		"tasks":      tasks,
	}))
}

// UpdateTaskStatus applies a manual status transition to a task. The
// overdue status is reserved for the sweep and rejected here.
func (h *RenewalHandler) UpdateTaskStatus(c fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("task_id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid task ID"))
	}

	var req models.UpdateTaskStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing task status request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}

	task, err := h.taskService.UpdateTaskStatus(c.Context(), taskID, req.Status)
	if err != nil {
		slog.Warn("Task status update rejected", "task_id", taskID, "status", req.Status, "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("TASK_UPDATE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(task))
}

// ============================================================================
// RISK SCORING
// ============================================================================

// ScoreRisk scores a policy's renewal risk from its type, premium and days
// until expiry without touching any stored renewal.
func (h *RenewalHandler) ScoreRisk(c fiber.Ctx) error {
	var req models.ScoreRiskRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing risk score request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	if req.PolicyType == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("VALIDATION_FAILED", "policy_type is required"))
	}

	assessment := h.riskScorer.Score(req.PolicyType, req.Premium, req.DaysUntilExpiry)

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(assessment))
}
