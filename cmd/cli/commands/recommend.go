package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/matching"
	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/core/services"
)

// RecommendCmd creates the recommend command
func RecommendCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <organization_id> <start> <end>",
		Short: "Recommend the best available workers for a shift window",
		Long:  "Rank the organization's active workers by skill coverage, availability, and proximity for the given shift window (RFC3339 timestamps).",
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

			skills, _ := cmd.Flags().GetStringArray("skill")
			clientEmail, _ := cmd.Flags().GetString("client-email")

			req := matching.ShiftRequirements{
				OrganizationID: args[0],
				Start:          start,
				End:            end,
				RequiredSkills: skills,
				ClientEmail:    clientEmail,
			}

			if cmd.Flags().Changed("longitude") && cmd.Flags().Changed("latitude") {
				longitude, _ := cmd.Flags().GetFloat64("longitude")
				latitude, _ := cmd.Flags().GetFloat64("latitude")
				req.ClientLocation = &model.GeoPoint{Longitude: longitude, Latitude: latitude}
			}

			app.Logger.Debug("recommend command",
				zap.String("organization_id", req.OrganizationID),
				zap.Strings("skills", skills))

			result, err := services.RecommendWorkers(app.Ctx, app.Scorer, app.Logger, req)
			if err != nil {
				return err
			}

			if len(result.Recommendations) == 0 {
				fmt.Println("\nNo available workers found for this window.")
				return nil
			}

			fmt.Printf("\nRecommended workers (%d):\n\n", len(result.Recommendations))
			for i, candidate := range result.Recommendations {
				distance := "unknown distance"
				if candidate.DistanceKm != nil {
					distance = fmt.Sprintf("%.1f km", *candidate.DistanceKm)
				}
				fmt.Printf("  %2d. %s %s  score=%d (skills=%d availability=%d distance=%d, %s)\n",
					i+1, candidate.FirstName, candidate.LastName,
					candidate.MatchScore, candidate.SkillScore,
					candidate.AvailabilityScore, candidate.DistanceScore, distance)
				if candidate.AIScore != nil {
					fmt.Printf("      AI score %d: %s\n", *candidate.AIScore, candidate.Reasoning)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringArray("skill", nil, "Required skill (repeatable)")
	cmd.Flags().String("client-email", "", "Client email used to resolve the visit location")
	cmd.Flags().Float64("longitude", 0, "Visit longitude (overrides the client directory)")
	cmd.Flags().Float64("latitude", 0, "Visit latitude (overrides the client directory)")

	return cmd
}
