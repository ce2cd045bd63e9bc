package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/daily-planner-api/internal/repository"
	"github.com/yukikurage/daily-planner-api/internal/services"
	"github.com/yukikurage/daily-planner-api/internal/utils"
	"go.uber.org/zap"
)

func materializeCmd() *cobra.Command {
	var (
		userID     uint64
		date       string
		templateID uint64
	)

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Create a user's daily task list for a date from a template",
		Long: `Create a user's daily task list for a date.

Without --template-id the template assigned to the date's weekday is used.
Without --date today's date in the configured timezone is used.

Examples:
  server materialize --user-id 1 --date 2025-03-10
  server materialize --user-id 1 --template-id 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			scheduleService := services.NewScheduleService(
				repository.NewDailyTaskListRepository(db),
				repository.NewTemplateRepository(db),
				loc,
			)

			input := services.MaterializeInput{UserID: userID, Date: scheduleService.Today()}
			if date != "" {
				parsed, err := utils.ParseDate(date)
				if err != nil {
					return err
				}
				input.Date = parsed
			}
			if templateID != 0 {
				input.TemplateID = &templateID
			}

			list, err := scheduleService.Materialize(input)
			if err != nil {
				return fmt.Errorf("failed to materialize: %w", err)
			}

			zap.L().Info("Daily task list created",
				zap.Uint64("list_id", list.ID),
				zap.String("date", utils.FormatDate(list.Date)),
				zap.Int("tasks", len(list.Tasks)))
			fmt.Fprintf(cmd.OutOrStdout(), "Created list %d for %s with %d task(s)\n",
				list.ID, utils.FormatDate(list.Date), len(list.Tasks))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&userID, "user-id", 0, "owner of the list")
	cmd.Flags().StringVar(&date, "date", "", "calendar date, YYYY-MM-DD")
	cmd.Flags().Uint64Var(&templateID, "template-id", 0, "template to expand")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
