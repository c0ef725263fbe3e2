package backtest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/optionsim/internal/models"
)

func sampleReport() RunReport {
	return RunReport{
		Simulation: models.Simulation{
			AssetSymbol:    "AAPL",
			SimulationName: "AAPL long call",
			StartDate:      "2023-03-01",
			EndDate:        "2023-03-31",
			InitialCapital: "1000",
		},
		ExecutionType: models.ExecutionLongCall,
		Result: models.BacktestResult{
			TotalReturn:      4,
			ReturnPercentage: 0.4,
			MaxDrawdown:      -0.4,
		},
		GeneratedAt:    time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC),
		EngineDuration: "1.5ms",
	}
}

func TestGenerateConsoleReport(t *testing.T) {
	out := GenerateConsoleReport(sampleReport())

	for _, want := range []string{"AAPL", "LONG_CALL", "0.40%", "-0.40%", "2023-03-01", "Engine Duration: 1.5ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, out)
		}
	}
}

func TestGenerateConsoleReportOmitsMissingDuration(t *testing.T) {
	report := sampleReport()
	report.EngineDuration = ""

	if strings.Contains(GenerateConsoleReport(report), "Engine Duration") {
		t.Error("Expected no duration line when it was never measured")
	}
}

func TestExportToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "aapl.json")

	if err := ExportToJSON(sampleReport(), path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read exported report: %v", err)
	}

	var decoded RunReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Exported report is not valid JSON: %v", err)
	}
	if decoded.Result.TotalReturn != 4 {
		t.Errorf("Expected total return 4 after round trip, got %v", decoded.Result.TotalReturn)
	}
}

func TestExportToJSONRequiresPath(t *testing.T) {
	if err := ExportToJSON(sampleReport(), ""); err == nil {
		t.Error("Expected an error for an empty output path")
	}
}
