package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/core/services"
)

// DeployTemplateCmd creates the deployTemplate command
func DeployTemplateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deployTemplate <organization_id> <start_date> <end_date>",
		Short: "Expand a weekly roster pattern into concrete shifts over a date range",
		Long:  "Generate one shift per matching weekday in the date range (dates as YYYY-MM-DD). Every generated shift is conflict-checked individually.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
			}
			endDate, err := time.Parse("2006-01-02", args[2])
			if err != nil {
				return fmt.Errorf("end_date must be YYYY-MM-DD: %w", err)
			}

			dayName, _ := cmd.Flags().GetString("day")
			day, err := parseWeekday(dayName)
			if err != nil {
				return err
			}

			startTime, _ := cmd.Flags().GetString("start-time")
			endTime, _ := cmd.Flags().GetString("end-time")
			breakMinutes, _ := cmd.Flags().GetInt("break")
			employeeID, _ := cmd.Flags().GetString("employee-id")
			employeeEmail, _ := cmd.Flags().GetString("employee-email")
			clientID, _ := cmd.Flags().GetString("client-id")
			clientEmail, _ := cmd.Flags().GetString("client-email")
			supportItems, _ := cmd.Flags().GetStringArray("support-item")

			template := model.RosterTemplate{
				OrganizationID: args[0],
				Pattern: model.RosterPattern{
					DayOfWeek:    day,
					StartTime:    startTime,
					EndTime:      endTime,
					BreakMinutes: breakMinutes,
				},
				DefaultEmployeeID:    employeeID,
				DefaultEmployeeEmail: employeeEmail,
				DefaultClientID:      clientID,
				DefaultClientEmail:   clientEmail,
				SupportItems:         supportItems,
			}

			app.Logger.Debug("deployTemplate command",
				zap.String("organization_id", template.OrganizationID),
				zap.String("day", dayName))

			result, err := services.DeployRosterTemplate(app.Ctx, app.Database, app.Detector, app.Logger, template, startDate, endDate)
			if err != nil {
				return err
			}

			printBulkResult(result)
			return nil
		},
	}

	cmd.Flags().String("day", "", "Weekday of the pattern (e.g. Monday)")
	cmd.Flags().String("start-time", "", "Shift start time of day (HH:MM)")
	cmd.Flags().String("end-time", "", "Shift end time of day (HH:MM)")
	cmd.Flags().Int("break", 0, "Break minutes")
	cmd.Flags().String("employee-id", "", "Default worker id")
	cmd.Flags().String("employee-email", "", "Default worker email")
	cmd.Flags().String("client-id", "", "Default client id")
	cmd.Flags().String("client-email", "", "Default client email")
	cmd.Flags().StringArray("support-item", nil, "Support item carried into shift notes (repeatable)")
	cmd.MarkFlagRequired("day")
	cmd.MarkFlagRequired("start-time")
	cmd.MarkFlagRequired("end-time")

	return cmd
}

func parseWeekday(name string) (time.Weekday, error) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), name) {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", name)
}
