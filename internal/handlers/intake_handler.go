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

type IntakeHandler struct {
	intakeService *services.IntakeService
}

func NewIntakeHandler(intakeService *services.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

func (h *IntakeHandler) Register(app *fiber.App) {
	api := app.Group("renewal/api/v1")

	api.Post("/clients", h.CreateClient)                        // POST /clients - Add a client to the book
	api.Post("/policies", h.RegisterPolicy)                     // POST /policies - Register a policy
	api.Patch("/policies/:policy_id/status", h.UpdatePolicyStatus) // PATCH /policies/:policy_id/status
	api.Post("/task-templates", h.CreateTemplate)               // POST /task-templates - Define a workflow step
}

func (h *IntakeHandler) CreateClient(c fiber.Ctx) error {
	var req models.CreateClientRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing client request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}

	client, err := h.intakeService.CreateClient(c.Context(), req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("CLIENT_REJECTED", err.Error()))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(client))
}

func (h *IntakeHandler) RegisterPolicy(c fiber.Ctx) error {
	var req models.RegisterPolicyRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing policy request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}

	policy, err := h.intakeService.RegisterPolicy(c.Context(), req)
	if err != nil {
		slog.Warn("Policy registration rejected", "policy_number", req.PolicyNumber, "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("POLICY_REJECTED", err.Error()))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(policy))
}

func (h *IntakeHandler) UpdatePolicyStatus(c fiber.Ctx) error {
	policyID, err := uuid.Parse(c.Params("policy_id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid policy ID"))
	}

	var req models.UpdatePolicyStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}

	if err := h.intakeService.UpdatePolicyStatus(c.Context(), policyID, req.Status); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("POLICY_UPDATE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"policy_id": policyID,
		"status":    req.Status,
	}))
}

func (h *IntakeHandler) CreateTemplate(c fiber.Ctx) error {
	var req models.CreateTemplateRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing template request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}

	template, err := h.intakeService.CreateTemplate(c.Context(), req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("TEMPLATE_REJECTED", err.Error()))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(template))
}
