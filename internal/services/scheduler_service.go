package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/utils"
	"go.uber.org/zap"
)

// SchedulerService runs the nightly auto-materialization job.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc)),
	}
}

// ScheduleDaily registers job to run every day at the HH:MM clock time.
func (s *SchedulerService) ScheduleDaily(clock string, job func()) (cron.EntryID, error) {
	spec, err := dailySpec(clock)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	<-s.cron.Stop().Done()
}

func dailySpec(clock string) (string, error) {
	hourPart, minutePart, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", clock)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", clock)
	}
	// minute hour dom month dow
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// AutoMaterializeResult counts the outcome of one auto-materialization run.
type AutoMaterializeResult struct {
	Created int
	Skipped int
	Failed  int
}

// AutoMaterializeToday creates today's list for every user who has a
// template assigned to today's weekday. Users that already have a list are
// skipped; other failures are logged and do not stop the run.
func (s *ScheduleService) AutoMaterializeToday() (AutoMaterializeResult, error) {
	var result AutoMaterializeResult

	today := s.Today()
	templates, err := s.templateRepo.ListWithWeekday(models.WeekdayOf(today))
	if err != nil {
		return result, fmt.Errorf("failed to list templates for %s: %w", models.WeekdayOf(today), err)
	}

	for _, template := range templates {
		templateID := template.ID
		_, err := s.Materialize(MaterializeInput{UserID: template.UserID, Date: today, TemplateID: &templateID})

		var conflict *apierrors.ConflictError
		switch {
		case err == nil:
			result.Created++
		case errors.As(err, &conflict):
			result.Skipped++
		default:
			result.Failed++
			zap.L().Error("Auto-materialization failed",
				zap.Uint64("user_id", template.UserID),
				zap.Uint64("template_id", template.ID),
				zap.Error(err))
		}
	}

	zap.L().Info("Auto-materialization finished",
		zap.String("date", utils.FormatDate(today)),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result, nil
}
