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

// UpdateShiftCmd creates the updateShift command
func UpdateShiftCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "updateShift <shift_id>",
		Short: "Apply a partial update to a shift, re-checking conflicts when the assignment changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID := args[0]
			update := model.ShiftUpdate{}

			setString := func(flag string, target **string) {
				if cmd.Flags().Changed(flag) {
					value, _ := cmd.Flags().GetString(flag)
					*target = &value
				}
			}
			setString("employee-id", &update.EmployeeID)
			setString("employee-email", &update.EmployeeEmail)
			setString("client-id", &update.ClientID)
			setString("client-email", &update.ClientEmail)
			setString("notes", &update.Notes)

			if cmd.Flags().Changed("start") {
				raw, _ := cmd.Flags().GetString("start")
				start, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return fmt.Errorf("start must be an RFC3339 timestamp: %w", err)
				}
				update.StartTime = &start
			}
			if cmd.Flags().Changed("end") {
				raw, _ := cmd.Flags().GetString("end")
				end, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return fmt.Errorf("end must be an RFC3339 timestamp: %w", err)
				}
				update.EndTime = &end
			}
			if cmd.Flags().Changed("status") {
				raw, _ := cmd.Flags().GetString("status")
				status, err := model.ParseShiftStatus(raw)
				if err != nil {
					return err
				}
				update.Status = &status
			}
			if cmd.Flags().Changed("break") {
				breakMinutes, _ := cmd.Flags().GetInt("break")
				update.BreakMinutes = &breakMinutes
			}

			app.Logger.Debug("updateShift command", zap.String("shift_id", shiftID))

			shift, err := services.UpdateShift(app.Ctx, app.Database, app.Detector, app.Logger, shiftID, update)
			if err != nil {
				var conflictErr *db.ConflictError
				if errors.As(err, &conflictErr) {
					printConflicts(conflictErr.Conflicts)
				}
				return err
			}

			fmt.Printf("\nShift updated: %s\n", shift.ID)
			fmt.Printf("Window: %s to %s\n", shift.StartTime.Format(time.RFC3339), shift.EndTime.Format(time.RFC3339))
			fmt.Printf("Status: %s\n\n", shift.Status)

			return nil
		},
	}

	cmd.Flags().String("employee-id", "", "New worker id")
	cmd.Flags().String("employee-email", "", "New worker email")
	cmd.Flags().String("client-id", "", "New client id")
	cmd.Flags().String("client-email", "", "New client email")
	cmd.Flags().String("start", "", "New start time (RFC3339)")
	cmd.Flags().String("end", "", "New end time (RFC3339)")
	cmd.Flags().String("status", "", "New status (pending, approved, completed, cancelled)")
	cmd.Flags().Int("break", 0, "New break minutes")
	cmd.Flags().String("notes", "", "New notes")

	return cmd
}
