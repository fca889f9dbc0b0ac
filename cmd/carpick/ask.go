package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/run-bigpig/carpick/internal/models"
	"github.com/run-bigpig/carpick/internal/orchestrator"
)

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Run one consultation turn from the command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyLogLevel(cmd, cfg.LogLevel)

			orch, _, err := buildOrchestrator(cfg)
			if err != nil {
				return err
			}

			min, _ := cmd.Flags().GetInt("budget-min")
			max, _ := cmd.Flags().GetInt("budget-max")
			sessionID, _ := cmd.Flags().GetString("session")

			req := orchestrator.Request{
				UserID:    "cli",
				SessionID: sessionID,
				Question:  strings.Join(args, " "),
				Budget:    models.Budget{Min: min, Max: max, UserConfirmed: max > 0},
			}

			out := cmd.OutOrStdout()
			result, err := orch.Consult(cmd.Context(), req, func(ev orchestrator.Event) {
				switch ev.Type {
				case orchestrator.EventVehicleRecommendations:
					// Printed below from the result.
				case orchestrator.EventError:
					fmt.Fprintf(out, "[오류] %s\n", ev.Content)
				default:
					tag := string(ev.Type)
					if ev.AgentID != "" {
						tag = ev.AgentID
					}
					fmt.Fprintf(out, "[%s] %s\n", tag, ev.Content)
				}
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\n세션: %s\n추천 결과:\n", result.SessionID)
			for _, rec := range result.Recommendations {
				fmt.Fprintf(out, "%d. %s %s %d년식, %d만원 (점수 %.2f)\n",
					rec.Rank, rec.Vehicle.Manufacturer, rec.Vehicle.Model,
					rec.Vehicle.Year, rec.Vehicle.Price, rec.Score)
				fmt.Fprintf(out, "   %s\n", rec.Reason)
				if rec.TCO != nil {
					fmt.Fprintf(out, "   3년 총비용 약 %d만원 (월 %d만원)\n", rec.TCO.Total, rec.TCO.MonthlyAverage)
				}
			}
			return nil
		},
	}
	cmd.Flags().Int("budget-min", 0, "budget floor in 만원")
	cmd.Flags().Int("budget-max", 0, "budget ceiling in 만원")
	cmd.Flags().String("session", "", "resume an existing session")
	return cmd
}
