package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/core/services"
	"github.com/carebridge/scheduler/pkg/db"
)

// CreateShiftCmd creates the createShift command
func CreateShiftCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createShift <organization_id> <start> <end>",
		Short: "Create a shift, rejecting it if the worker has overlapping commitments",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(time.RFC3339, args[1])
			if err != nil {
				return fmt.Errorf("start must be an RFC3339 timestamp: %w", err)
			}
			end, err := time.Parse(time.RFC3339, args[2])
			if err != nil {
				return fmt.Errorf("end must be an RFC3339 timestamp: %w", err)
			}

			employeeID, _ := cmd.Flags().GetString("employee-id")
			employeeEmail, _ := cmd.Flags().GetString("employee-email")
			clientID, _ := cmd.Flags().GetString("client-id")
			clientEmail, _ := cmd.Flags().GetString("client-email")
			breakMinutes, _ := cmd.Flags().GetInt("break")
			notes, _ := cmd.Flags().GetString("notes")

			spec := model.ShiftSpec{
				EmployeeID:     employeeID,
				EmployeeEmail:  employeeEmail,
				ClientID:       clientID,
				ClientEmail:    clientEmail,
				OrganizationID: args[0],
				StartTime:      start,
				EndTime:        end,
				BreakMinutes:   breakMinutes,
				Notes:          notes,
			}

			app.Logger.Debug("createShift command",
				zap.String("organization_id", spec.OrganizationID),
				zap.String("employee_id", employeeID))

			shift, err := services.CreateShift(app.Ctx, app.Database, app.Detector, app.Logger, spec)
			if err != nil {
				var conflictErr *db.ConflictError
				if errors.As(err, &conflictErr) {
					printConflicts(conflictErr.Conflicts)
				}
				return err
			}

			fmt.Printf("\nShift created: %s\n", shift.ID)
			fmt.Printf("Window: %s to %s\n", shift.StartTime.Format(time.RFC3339), shift.EndTime.Format(time.RFC3339))
			fmt.Printf("Status: %s\n\n", shift.Status)

			return nil
		},
	}

	cmd.Flags().String("employee-id", "", "Assigned worker id")
	cmd.Flags().String("employee-email", "", "Assigned worker email")
	cmd.Flags().String("client-id", "", "Client id")
	cmd.Flags().String("client-email", "", "Client email")
	cmd.Flags().Int("break", 0, "Break minutes")
	cmd.Flags().String("notes", "", "Shift notes")

	return cmd
}

func printConflicts(conflicts []model.Conflict) {
	fmt.Printf("\nScheduling conflicts found (%d):\n", len(conflicts))
	for _, conflict := range conflicts {
		if conflict.ShiftID != "" {
			fmt.Printf("  - [%s] shift %s: %s\n", conflict.Source, conflict.ShiftID, conflict.Detail)
		} else {
			fmt.Printf("  - [%s] %s\n", conflict.Source, conflict.Detail)
		}
	}
	fmt.Println()
}
