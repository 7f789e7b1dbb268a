package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/services"
)

// CancelShiftCmd creates the cancelShift command
func CancelShiftCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancelShift <shift_id>",
		Short: "Cancel a shift (soft delete, the record is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID := args[0]

			app.Logger.Debug("cancelShift command", zap.String("shift_id", shiftID))

			shift, err := services.CancelShift(app.Ctx, app.Database, app.Dispatcher, app.Logger, shiftID)
			if err != nil {
				return err
			}

			fmt.Printf("\nShift cancelled: %s\n", shift.ID)
			fmt.Printf("Status: %s (record retained)\n\n", shift.Status)

			return nil
		},
	}
}
