package services

import (
	"testing"
	"time"

	"github.com/yukikurage/daily-planner-api/internal/repository"
	"gorm.io/gorm"
)

var (
	// 2025-03-10 is a Monday.
	monday  = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

type testServices struct {
	db        *gorm.DB
	tasks     *TaskService
	templates *TemplateService
	schedules *ScheduleService
	daily     *DailyTaskService
	labels    *LabelService
	analytics *AnalyticsService
}

func newTestServices(t *testing.T, db *gorm.DB, now time.Time) testServices {
	t.Helper()

	clock := func() time.Time { return now }
	templateRepo := repository.NewTemplateRepository(db)
	return testServices{
		db:        db,
		tasks:     NewTaskService(repository.NewTaskRepository(db), nil),
		templates: NewTemplateService(templateRepo),
		schedules: NewScheduleService(repository.NewDailyTaskListRepository(db), templateRepo, time.UTC).WithClock(clock),
		daily:     NewDailyTaskService(repository.NewDailyTaskRepository(db), time.UTC).WithClock(clock),
		labels:    NewLabelService(repository.NewLabelRepository(db)),
		analytics: NewAnalyticsService(repository.NewAnalyticsRepository(db)),
	}
}

func uint64Ptr(v uint64) *uint64 { return &v }

func strPtr(v string) *string { return &v }
