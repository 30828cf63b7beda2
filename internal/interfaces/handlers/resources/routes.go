package resources

import (
	ressvc "donorcrm-backend/internal/application/resources"
	"donorcrm-backend/internal/domain"
	"donorcrm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func uuidFilter(param, column string) Filter { return Filter{Param: param, Column: column, Kind: KindUUID} }
func textFilter(param, column string) Filter { return Filter{Param: param, Column: column} }

// Register mounts every CRUD resource under api (the /api group).
func Register(api fiber.Router, db *gorm.DB) {
	(&Handlers[domain.User]{
		Service: ressvc.NewService[domain.User](db, "User"),
		Config: Config{
			Filters: []Filter{textFilter("role", "role"), textFilter("email", "email")},
			Order:   "last_name ASC, first_name ASC",
		},
	}).Mount(api.Group("/users"))

	(&Handlers[domain.Household]{
		Service: ressvc.NewService[domain.Household](db, "Household"),
		Config:  Config{Order: "name ASC"},
	}).Mount(api.Group("/households"))

	(&Handlers[domain.Person]{
		Service: ressvc.NewService[domain.Person](db, "Person"),
		Config: Config{
			Filters: []Filter{
				uuidFilter("householdId", "household_id"),
				uuidFilter("portfolioId", "portfolio_id"),
				textFilter("wealthBand", "wealth_band"),
				textFilter("email", "email"),
			},
			Order: "last_name ASC, first_name ASC",
		},
	}).Mount(api.Group("/persons"))

	(&Handlers[domain.Gift]{
		Service: ressvc.NewService[domain.Gift](db, "Gift"),
		Config: Config{
			Filters: []Filter{
				uuidFilter("personId", "person_id"),
				uuidFilter("campaignId", "campaign_id"),
				textFilter("giftType", "gift_type"),
				textFilter("currency", "currency"),
			},
			Order: "received_at DESC",
		},
	}).Mount(api.Group("/gifts"))

	(&Handlers[domain.Opportunity]{
		Service: ressvc.NewOpportunityService(db),
		Config: Config{
			Filters: []Filter{
				uuidFilter("personId", "person_id"),
				uuidFilter("ownerId", "owner_id"),
				textFilter("stage", "stage"),
			},
			Order:      "created_at DESC",
			OwnerField: "ownerId",
		},
	}).Mount(api.Group("/opportunities"))

	(&Handlers[domain.Interaction]{
		Service: ressvc.NewService[domain.Interaction](db, "Interaction"),
		Config: Config{
			Filters: []Filter{
				uuidFilter("personId", "person_id"),
				uuidFilter("ownerId", "owner_id"),
				textFilter("type", "type"),
			},
			Order:      "occurred_at DESC",
			OwnerField: "ownerId",
		},
	}).Mount(api.Group("/interactions"))

	tasks := &Handlers[domain.Task]{
		Service: ressvc.NewService[domain.Task](db, "Task"),
		Config: Config{
			Filters: []Filter{
				uuidFilter("personId", "person_id"),
				uuidFilter("ownerId", "owner_id"),
				uuidFilter("opportunityId", "opportunity_id"),
				textFilter("priority", "priority"),
				{Param: "completed", Column: "completed", Kind: KindInt},
			},
			Order:      "due_date ASC",
			OwnerField: "ownerId",
		},
	}
	taskGroup := api.Group("/tasks")
	taskGroup.Patch("/:id/complete", completeTask(tasks.Service))
	tasks.Mount(taskGroup)

	(&Handlers[domain.Campaign]{
		Service: ressvc.NewService[domain.Campaign](db, "Campaign"),
		Config: Config{
			Filters: []Filter{textFilter("status", "status"), textFilter("type", "type")},
			Order:   "created_at DESC",
		},
	}).Mount(api.Group("/campaigns"))

	(&Handlers[domain.Portfolio]{
		Service: ressvc.NewService[domain.Portfolio](db, "Portfolio"),
		Config: Config{
			Filters:    []Filter{uuidFilter("ownerId", "owner_id")},
			Order:      "name ASC",
			OwnerField: "ownerId",
		},
	}).Mount(api.Group("/portfolios"))

	(&Handlers[domain.IntegrationSyncRun]{
		Service: ressvc.NewService[domain.IntegrationSyncRun](db, "IntegrationSyncRun"),
		Config: Config{
			Filters: []Filter{textFilter("status", "status")},
			Order:   "started_at DESC",
			Scope:   &Scope{Param: "id", Column: "integration_id", JSONField: "integrationId"},
		},
	}).Mount(api.Group("/integrations/:id/sync-runs"))

	(&Handlers[domain.Integration]{
		Service: ressvc.NewService[domain.Integration](db, "Integration"),
		Config: Config{
			Filters: []Filter{textFilter("provider", "provider"), textFilter("status", "status")},
			Order:   "name ASC",
		},
	}).Mount(api.Group("/integrations"))

	(&Handlers[domain.DataQualityIssue]{
		Service: ressvc.NewService[domain.DataQualityIssue](db, "DataQualityIssue"),
		Config: Config{
			Filters: []Filter{
				textFilter("entityType", "entity_type"),
				uuidFilter("entityId", "entity_id"),
				textFilter("issueType", "issue_type"),
				textFilter("severity", "severity"),
				{Param: "resolved", Column: "resolved", Kind: KindBool},
			},
			Order: "created_at DESC",
		},
	}).Mount(api.Group("/data-quality-issues"))

	(&Handlers[domain.WorkflowBlock]{
		Service: ressvc.NewService[domain.WorkflowBlock](db, "WorkflowBlock"),
		Config: Config{
			Order: "position ASC",
			Scope: &Scope{Param: "id", Column: "workflow_id", JSONField: "workflowId"},
		},
	}).Mount(api.Group("/workflows/:id/blocks"))

	(&Handlers[domain.Workflow]{
		Service: ressvc.NewService[domain.Workflow](db, "Workflow"),
		Config: Config{
			Filters:    []Filter{textFilter("status", "status"), uuidFilter("ownerId", "owner_id")},
			Order:      "name ASC",
			OwnerField: "ownerId",
		},
	}).Mount(api.Group("/workflows"))

	(&Handlers[domain.CalendarEvent]{
		Service: ressvc.NewService[domain.CalendarEvent](db, "CalendarEvent"),
		Config: Config{
			Filters:    []Filter{uuidFilter("personId", "person_id"), uuidFilter("ownerId", "owner_id")},
			Order:      "starts_at ASC",
			OwnerField: "ownerId",
		},
	}).Mount(api.Group("/calendar-events"))
}

// PATCH /api/tasks/:id/complete
func completeTask(svc *ressvc.Service[domain.Task]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		task, err := ressvc.CompleteTask(c.UserContext(), svc, id)
		if err != nil {
			return err
		}
		return response.OK(c, task)
	}
}
