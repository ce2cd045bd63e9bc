package repository

import (
	"time"

	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// TaskRepository defines the interface for task library data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task owned by the user
	FindByID(userID, id uint64) (*models.Task, error)

	// List returns the user's tasks ordered by title, with the templates using them
	List(userID uint64) ([]models.Task, error)

	// Update saves the title of a task
	Update(task *models.Task) error

	// Delete removes a task and its template memberships, detaching daily tasks
	// created from them. It returns the number of templates the task was removed from.
	Delete(userID, id uint64) (int64, error)
}

// TemplateRepository defines the interface for template data access
type TemplateRepository interface {
	// Create stores a template and its tasks in one transaction
	Create(template *models.Template, tasks []models.TemplateTask) error

	// Update saves title and weekdays and, when tasks is not nil, replaces the
	// template's task membership
	Update(template *models.Template, tasks []models.TemplateTask) error

	// FindByID finds a template owned by the user with its ordered tasks
	FindByID(userID, id uint64) (*models.Template, error)

	// List returns the user's templates ordered by title with their ordered tasks
	List(userID uint64) ([]models.Template, error)

	// ListWithWeekday returns every template, of any user, assigned to day
	ListWithWeekday(day models.Weekday) ([]models.Template, error)

	// Delete removes a template unless a daily task list references it
	Delete(userID, id uint64) error
}

// DailyTaskListRepository defines the interface for schedule data access
type DailyTaskListRepository interface {
	// Materialize creates list and the daily tasks of its template in one transaction
	Materialize(list *models.DailyTaskList) error

	// FindByID finds a list owned by the user with its ordered tasks
	FindByID(userID, id uint64) (*models.DailyTaskList, error)

	// FindByDate finds the user's list for a calendar date
	FindByDate(userID uint64, date time.Time) (*models.DailyTaskList, error)

	// List retrieves lists with filtering and pagination, newest date first
	List(filter DailyTaskListFilter) ([]models.DailyTaskList, int64, error)

	// Delete removes a list together with its daily tasks
	Delete(userID, id uint64) error
}

// DailyTaskListFilter holds filtering options for listing daily task lists
type DailyTaskListFilter struct {
	UserID    uint64
	StartDate *time.Time
	EndDate   *time.Time
	Params    utils.PaginationParams
}

// DailyTaskRepository defines the interface for daily task data access
type DailyTaskRepository interface {
	// FindByID finds a daily task owned by the user with its labels and origin
	FindByID(userID, id uint64) (*models.DailyTask, error)

	// Update applies patch to a daily task in one transaction
	Update(userID, id uint64, patch DailyTaskPatch) (*models.DailyTask, error)

	// Delete removes a daily task and its label links
	Delete(userID, id uint64) error

	// CreateAdhoc appends an adhoc task to the end of the user's open queue
	CreateAdhoc(task *models.DailyTask, labelIDs []string) error

	// ListAdhoc lists the user's adhoc tasks
	ListAdhoc(filter AdhocFilter) ([]models.DailyTask, error)
}

// DailyTaskPatch describes a partial daily task update. Nil fields are left
// unchanged. Completed routes through the completion transitions.
type DailyTaskPatch struct {
	Title     *string
	Order     *int
	DueDate   *time.Time
	Completed *bool
	LabelIDs  *[]string
	Now       time.Time
}

// AdhocFilter holds filtering options for listing adhoc tasks
type AdhocFilter struct {
	UserID    uint64
	Completed bool
	// CompletedFrom and CompletedBefore bound completed_at, the upper bound
	// exclusive
	CompletedFrom   *time.Time
	CompletedBefore *time.Time
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	// Create creates a new label
	Create(label *models.Label) error

	// FindByID finds a label owned by the user
	FindByID(userID uint64, id string) (*models.Label, error)

	// List returns the user's labels ordered by name
	List(userID uint64) ([]models.Label, error)

	// Update saves name and color of a label
	Update(label *models.Label) error

	// Delete removes a label and its links to daily tasks
	Delete(userID uint64, id string) error
}

// AnalyticsRepository defines the read-only completion queries
type AnalyticsRepository interface {
	// CompletionStats counts daily tasks per template task of the user's templates
	CompletionStats(userID uint64) ([]CompletionStatRow, error)
}

// CompletionStatRow is one template task with its materialized instance counts
type CompletionStatRow struct {
	TemplateID         uint64
	TemplateTitle      string
	TemplateTaskID     uint64
	TemplateOrder      int
	TaskID             uint64
	TaskTitle          string
	TotalInstances     int64
	CompletedInstances int64
}
