package backtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yourusername/optionsim/internal/models"
)

// RunReport is the exportable record of one backtest run
type RunReport struct {
	Simulation     models.Simulation     `json:"simulation"`
	ExecutionType  models.ExecutionType  `json:"execution_type"`
	Result         models.BacktestResult `json:"result"`
	GeneratedAt    time.Time             `json:"generated_at"`
	EngineDuration string                `json:"engine_duration,omitempty"`
}

// GenerateConsoleReport formats a run result for terminal output
func GenerateConsoleReport(report RunReport) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Simulation: %s\n", report.Simulation.SimulationName))
	builder.WriteString(fmt.Sprintf("Asset: %s\n", report.Simulation.AssetSymbol))
	builder.WriteString(fmt.Sprintf("Window: %s to %s\n", report.Simulation.StartDate, report.Simulation.EndDate))
	builder.WriteString(fmt.Sprintf("Execution Type: %s\n", report.ExecutionType))
	builder.WriteString(fmt.Sprintf("Total Return: %.2f\n", report.Result.TotalReturn))
	builder.WriteString(fmt.Sprintf("Return: %.2f%%\n", report.Result.ReturnPercentage))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f%%\n", report.Result.MaxDrawdown))
	if report.EngineDuration != "" {
		builder.WriteString(fmt.Sprintf("Engine Duration: %s\n", report.EngineDuration))
	}
	return builder.String()
}

// ExportToJSON writes the run report to a JSON file
func ExportToJSON(report RunReport, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}
