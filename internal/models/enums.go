package models

type PolicyType string

const (
	PolicyTypeGeneralLiability      PolicyType = "general_liability"
	PolicyTypeProperty              PolicyType = "property"
	PolicyTypeCyberLiability        PolicyType = "cyber_liability"
	PolicyTypeDirectorsAndOfficers  PolicyType = "directors_and_officers"
	PolicyTypeProfessionalLiability PolicyType = "professional_liability"
	PolicyTypeWorkersCompensation   PolicyType = "workers_compensation"
	PolicyTypeCommercialAuto        PolicyType = "commercial_auto"
	PolicyTypeUmbrella              PolicyType = "umbrella"
)

type PolicyStatus string

const (
	PolicyActive    PolicyStatus = "active"
	PolicyInactive  PolicyStatus = "inactive"
	PolicyCancelled PolicyStatus = "cancelled"
	PolicyExpired   PolicyStatus = "expired"
)

type RenewalStatus string

const (
	RenewalPending    RenewalStatus = "pending"
	RenewalInProgress RenewalStatus = "in_progress"
	RenewalQuoted     RenewalStatus = "quoted"
	RenewalBound      RenewalStatus = "bound"
	RenewalLost       RenewalStatus = "lost"
	RenewalCancelled  RenewalStatus = "cancelled"
)

// BlockingRenewalStatuses are the statuses that count as an open renewal:
// while one of these exists for a policy, no new renewal may be created.
var BlockingRenewalStatuses = []RenewalStatus{
	RenewalPending,
	RenewalInProgress,
	RenewalQuoted,
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskOverdue    TaskStatus = "overdue"
	TaskSkipped    TaskStatus = "skipped"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

type TaskCategory string

const (
	CategoryDataCollection      TaskCategory = "data_collection"
	CategoryMarketing           TaskCategory = "marketing"
	CategoryQuoteFollowUp       TaskCategory = "quote_follow_up"
	CategoryProposal            TaskCategory = "proposal"
	CategoryClientCommunication TaskCategory = "client_communication"
	CategoryBinding             TaskCategory = "binding"
	CategoryPostBind            TaskCategory = "post_bind"
	CategoryOther               TaskCategory = "other"
)

type QuoteStatus string

const (
	QuoteReceived QuoteStatus = "received"
	QuoteSelected QuoteStatus = "selected"
)

type ActivityType string

const (
	ActivityRenewalCreated   ActivityType = "renewal_created"
	ActivityTaskCompleted    ActivityType = "task_completed"
	ActivityQuoteReceived    ActivityType = "quote_received"
	ActivityQuoteSelected    ActivityType = "quote_selected"
	ActivityEmailSent        ActivityType = "email_sent"
	ActivityStatusChanged    ActivityType = "status_changed"
	ActivityDocumentUploaded ActivityType = "document_uploaded"
)
