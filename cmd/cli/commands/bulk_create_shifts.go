package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/core/services"
)

// bulkShiftItem is one entry of the bulk-creation YAML file.
type bulkShiftItem struct {
	EmployeeID     string `yaml:"employeeID,omitempty"`
	EmployeeEmail  string `yaml:"employeeEmail,omitempty"`
	ClientID       string `yaml:"clientID,omitempty"`
	ClientEmail    string `yaml:"clientEmail,omitempty"`
	OrganizationID string `yaml:"organizationID"`
	Start          string `yaml:"start"`
	End            string `yaml:"end"`
	BreakMinutes   int    `yaml:"breakMinutes,omitempty"`
	Notes          string `yaml:"notes,omitempty"`
}

// BulkCreateShiftsCmd creates the bulkCreateShifts command
func BulkCreateShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bulkCreateShifts <file>",
		Short: "Create many shifts from a YAML file, reporting per-item outcomes",
		Long:  "Create every shift listed in the YAML file. Items are processed independently; a conflicting or invalid item is reported and the rest still run.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read shift file: %w", err)
			}

			var items []bulkShiftItem
			if err := yaml.Unmarshal(data, &items); err != nil {
				return fmt.Errorf("failed to parse shift file: %w", err)
			}

			specs := make([]model.ShiftSpec, 0, len(items))
			for i, item := range items {
				start, err := time.Parse(time.RFC3339, item.Start)
				if err != nil {
					return fmt.Errorf("item %d: start must be an RFC3339 timestamp: %w", i, err)
				}
				end, err := time.Parse(time.RFC3339, item.End)
				if err != nil {
					return fmt.Errorf("item %d: end must be an RFC3339 timestamp: %w", i, err)
				}
				specs = append(specs, model.ShiftSpec{
					EmployeeID:     item.EmployeeID,
					EmployeeEmail:  item.EmployeeEmail,
					ClientID:       item.ClientID,
					ClientEmail:    item.ClientEmail,
					OrganizationID: item.OrganizationID,
					StartTime:      start,
					EndTime:        end,
					BreakMinutes:   item.BreakMinutes,
					Notes:          item.Notes,
				})
			}

			app.Logger.Debug("bulkCreateShifts command", zap.Int("items", len(specs)))

			result := services.BulkCreateShifts(app.Ctx, app.Database, app.Detector, app.Logger, specs)
			printBulkResult(result)

			return nil
		},
	}
}

func printBulkResult(result *services.BulkResult) {
	fmt.Printf("\nBulk creation finished: %d created, %d failed\n\n", len(result.Created), len(result.Failed))

	for _, shift := range result.Created {
		fmt.Printf("  created %s  %s to %s\n", shift.ID,
			shift.StartTime.Format(time.RFC3339), shift.EndTime.Format(time.RFC3339))
	}

	if len(result.Failed) > 0 {
		fmt.Println()
		for _, failure := range result.Failed {
			fmt.Printf("  failed item %d: %v\n", failure.Index, failure.Err)
		}
	}
	fmt.Println()
}
