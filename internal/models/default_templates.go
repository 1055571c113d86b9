package models

func strPtr(s string) *string { return &s }

// DefaultTaskTemplates is the built-in renewal checklist used when a policy
// type has no custom templates configured. Offsets run from 90 days before
// the renewal due date down to the due date itself. The resolver receives
// this set at construction; the engine never reaches for it directly.
var DefaultTaskTemplates = []TaskTemplate{
	{
		Name:          "Gather updated exposure information",
		Description:   strPtr("Collect current payroll, revenue, headcount and property schedules from the client"),
		Category:      CategoryDataCollection,
		Priority:      TaskPriorityHigh,
		DaysBeforeDue: 90,
		TemplateOrder: 1,
		Active:        true,
	},
	{
		Name:          "Request loss runs from current carrier",
		Description:   strPtr("Order 5-year currently valued loss runs for all lines"),
		Category:      CategoryDataCollection,
		Priority:      TaskPriorityHigh,
		DaysBeforeDue: 85,
		TemplateOrder: 2,
		Active:        true,
	},
	{
		Name:          "Collect updated applications and financials",
		Description:   strPtr("Refresh supplemental applications and most recent financial statements"),
		Category:      CategoryDataCollection,
		Priority:      TaskPriorityMedium,
		DaysBeforeDue: 80,
		TemplateOrder: 3,
		Active:        true,
	},
	{
		Name:          "Review coverage needs with client",
		Description:   strPtr("Walk through limit adequacy, new exposures and any coverage gaps"),
		Category:      CategoryClientCommunication,
		Priority:      TaskPriorityMedium,
		DaysBeforeDue: 75,
		TemplateOrder: 4,
		Active:        true,
	},
	{
		Name:          "Prepare submission package",
		Description:   strPtr("Assemble applications, loss runs and narrative into the marketing submission"),
		Category:      CategoryMarketing,
		Priority:      TaskPriorityHigh,
		DaysBeforeDue: 70,
		TemplateOrder: 5,
		Active:        true,
	},
	{
		Name:          "Submit to incumbent carrier",
		Description:   strPtr("Send the renewal submission to the expiring carrier for their renewal terms"),
		Category:      CategoryMarketing,
		Priority:      TaskPriorityHigh,
		DaysBeforeDue: 65,
		TemplateOrder: 6,
		Active:        true,
	},
	{
		Name:          "Market to alternative carriers",
		Description:   strPtr("Shop the account to at least two competing markets"),
		Category:      CategoryMarketing,
		Priority:      TaskPriorityMedium,
		DaysBeforeDue: 60,
		TemplateOrder: 7,
		Active:        true,
	},
	{
		Name:          "Follow up on outstanding quotes",
		Description:   strPtr("Chase carriers that have not yet responded with terms"),
		Category:      CategoryQuoteFollowUp,
		Priority:      TaskPriorityMedium,
		DaysBeforeDue: 45,
		TemplateOrder: 8,
		Active:        true,
	},
	{
		Name:          "Compare quotes received",
		Description:   strPtr("Build the quote comparison across premium, limits, deductibles and exclusions"),
		Category:      CategoryQuoteFollowUp,
		Priority:      TaskPriorityHigh,
		DaysBeforeDue: 35,
		TemplateOrder: 9,
		Active:        true,
	},
	{
		Name:          "Prepare renewal proposal",
		Description:   strPtr("Draft the proposal with recommended option and alternatives"),
		Category:      CategoryProposal,
		Priority:      TaskPriorityHigh,
		DaysBeforeDue: 30,
		TemplateOrder: 10,
		Active:        true,
	},
	{
		Name:          "Present proposal to client",
		Description:   strPtr("Review the proposal with the client and obtain a carrier decision"),
		Category:      CategoryClientCommunication,
		Priority:      TaskPriorityUrgent,
		DaysBeforeDue: 21,
		TemplateOrder: 11,
		Active:        true,
	},
	{
		Name:          "Bind coverage with selected carrier",
		Description:   strPtr("Issue the bind order and confirm effective-date coverage"),
		Category:      CategoryBinding,
		Priority:      TaskPriorityUrgent,
		DaysBeforeDue: 7,
		TemplateOrder: 12,
		Active:        true,
	},
	{
		Name:          "Deliver binder and invoice to client",
		Description:   strPtr("Send binder, invoice and certificate updates; schedule policy delivery"),
		Category:      CategoryPostBind,
		Priority:      TaskPriorityHigh,
		DaysBeforeDue: 0,
		TemplateOrder: 13,
		Active:        true,
	},
}
