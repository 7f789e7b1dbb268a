package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/db"
)

// ListShiftsCmd creates the listShifts command
func ListShiftsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listShifts <organization_id>",
		Short: "List an organization's shifts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID := args[0]
			filter := db.ShiftFilter{}

			if cmd.Flags().Changed("status") {
				raw, _ := cmd.Flags().GetString("status")
				status, err := model.ParseShiftStatus(raw)
				if err != nil {
					return err
				}
				filter.Status = &status
			}
			employeeID, _ := cmd.Flags().GetString("employee-id")
			filter.EmployeeID = employeeID
			clientID, _ := cmd.Flags().GetString("client-id")
			filter.ClientID = clientID

			if cmd.Flags().Changed("from") {
				raw, _ := cmd.Flags().GetString("from")
				from, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return fmt.Errorf("from must be an RFC3339 timestamp: %w", err)
				}
				filter.From = &from
			}
			if cmd.Flags().Changed("to") {
				raw, _ := cmd.Flags().GetString("to")
				to, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return fmt.Errorf("to must be an RFC3339 timestamp: %w", err)
				}
				filter.To = &to
			}

			app.Logger.Debug("listShifts command", zap.String("organization_id", orgID))

			shifts, err := app.Database.ListByOrganization(app.Ctx, orgID, filter)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d shifts:\n\n", len(shifts))
			for _, shift := range shifts {
				worker := shift.EmployeeID
				if worker == "" {
					worker = shift.EmployeeEmail
				}
				if worker == "" {
					worker = "(unassigned)"
				}
				fmt.Printf("  %s  %s to %s  %-10s %s\n",
					shift.ID,
					shift.StartTime.Format(time.RFC3339),
					shift.EndTime.Format(time.RFC3339),
					shift.Status,
					worker)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("status", "", "Filter by status (pending, approved, completed, cancelled)")
	cmd.Flags().String("employee-id", "", "Filter by worker id")
	cmd.Flags().String("client-id", "", "Filter by client id")
	cmd.Flags().String("from", "", "Only shifts ending after this time (RFC3339)")
	cmd.Flags().String("to", "", "Only shifts starting before this time (RFC3339)")

	return cmd
}
