package services

import (
	"context"
	"testing"
	"time"

	"renewal-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intakeFixture() (*IntakeService, *fakeClientStore, *fakePolicyStore, *fakeTemplateStore) {
	clients := &fakeClientStore{}
	policies := &fakePolicyStore{}
	templates := &fakeTemplateStore{}
	return NewIntakeService(clients, policies, templates), clients, policies, templates
}

func TestRegisterPolicy_EntersBookAsActive(t *testing.T) {
	service, clients, policies, _ := intakeFixture()
	client, err := service.CreateClient(context.Background(), models.CreateClientRequest{
		CompanyName: "Meridian Logistics",
	})
	require.NoError(t, err)
	require.Len(t, clients.clients, 1)

	policy, err := service.RegisterPolicy(context.Background(), models.RegisterPolicyRequest{
		ClientID:       client.ID,
		PolicyNumber:   "POL-4001",
		Carrier:        "Hartwell Mutual",
		PolicyType:     models.PolicyTypeProperty,
		Premium:        decimal.NewFromInt(30000),
		CoverageLimit:  decimal.NewFromInt(1000000),
		ExpirationDate: time.Now().AddDate(1, 0, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, models.PolicyActive, policy.Status)
	assert.Len(t, policies.policies, 1)
}

func TestRegisterPolicy_RequiresExistingClient(t *testing.T) {
	service, _, policies, _ := intakeFixture()

	_, err := service.RegisterPolicy(context.Background(), models.RegisterPolicyRequest{
		ClientID:       uuid.New(),
		PolicyNumber:   "POL-4002",
		Carrier:        "Hartwell Mutual",
		PolicyType:     models.PolicyTypeProperty,
		Premium:        decimal.NewFromInt(30000),
		ExpirationDate: time.Now().AddDate(1, 0, 0),
	})

	assert.Error(t, err)
	assert.Empty(t, policies.policies)
}

func TestRegisterPolicy_Validation(t *testing.T) {
	service, clients, _, _ := intakeFixture()
	client := models.Client{ID: uuid.New(), CompanyName: "Meridian Logistics"}
	clients.clients = []models.Client{client}

	cases := []struct {
		name string
		req  models.RegisterPolicyRequest
	}{
		{"missing policy number", models.RegisterPolicyRequest{
			ClientID: client.ID, Carrier: "Hartwell Mutual", ExpirationDate: time.Now(),
		}},
		{"missing carrier", models.RegisterPolicyRequest{
			ClientID: client.ID, PolicyNumber: "POL-1", ExpirationDate: time.Now(),
		}},
		{"negative premium", models.RegisterPolicyRequest{
			ClientID: client.ID, PolicyNumber: "POL-1", Carrier: "Hartwell Mutual",
			Premium: decimal.NewFromInt(-1), ExpirationDate: time.Now(),
		}},
		{"missing expiration", models.RegisterPolicyRequest{
			ClientID: client.ID, PolicyNumber: "POL-1", Carrier: "Hartwell Mutual",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.RegisterPolicy(context.Background(), tc.req)
			assert.Error(t, err)
		})
	}
}

func TestUpdatePolicyStatus_RejectsUnknownStatus(t *testing.T) {
	service, _, _, _ := intakeFixture()

	err := service.UpdatePolicyStatus(context.Background(), uuid.New(), models.PolicyStatus("revoked"))

	assert.Error(t, err)
}

func TestCreateTemplate_DefaultsAndActivation(t *testing.T) {
	service, _, _, templates := intakeFixture()

	template, err := service.CreateTemplate(context.Background(), models.CreateTemplateRequest{
		Name:          "Confirm payroll figures",
		DaysBeforeDue: 40,
		TemplateOrder: 1,
	})

	require.NoError(t, err)
	assert.True(t, template.Active)
	assert.Equal(t, models.TaskPriorityMedium, template.Priority)
	assert.Equal(t, models.CategoryOther, template.Category)
	assert.Len(t, templates.templates, 1)
}

func TestCreateTemplate_Validation(t *testing.T) {
	service, _, _, _ := intakeFixture()

	_, err := service.CreateTemplate(context.Background(), models.CreateTemplateRequest{
		DaysBeforeDue: 10, TemplateOrder: 1,
	})
	assert.Error(t, err, "nameless template must be rejected")

	_, err = service.CreateTemplate(context.Background(), models.CreateTemplateRequest{
		Name: "Review loss runs", DaysBeforeDue: -1, TemplateOrder: 1,
	})
	assert.Error(t, err, "negative offset must be rejected")

	_, err = service.CreateTemplate(context.Background(), models.CreateTemplateRequest{
		Name: "Review loss runs", DaysBeforeDue: 10,
	})
	assert.Error(t, err, "non-positive order must be rejected")
}
