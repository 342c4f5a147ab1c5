package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"creator_forecast/pkg/core/assumption"
	"creator_forecast/pkg/core/pipeline"
	"creator_forecast/pkg/core/scenario"
	"creator_forecast/pkg/core/store"
	"creator_forecast/pkg/core/valuation"
	"creator_forecast/pkg/export"
	"creator_forecast/pkg/report"
)

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}
	return log
}

func main() {
	assumptionsPath := flag.String("assumptions", "", "YAML file of assumption overrides (optional)")
	scenariosPath := flag.String("scenarios", "", "HJSON scenario definitions (optional; defaults to the founder-pain downside)")
	workbookPath := flag.String("workbook", "forecast.xlsx", "output workbook path")
	chartsPath := flag.String("charts", "forecast_charts.png", "output chart image path")
	summaryPath := flag.String("summary", "", "optional HTML run summary path")
	multiple := flag.Float64("multiple", valuation.DefaultRevenueMultiple, "revenue multiple for valuation")
	flag.Parse()

	godotenv.Load()
	log := newLogger()

	// 1. Assumptions: defaults, optionally merged with a YAML file.
	as := assumption.Default()
	if *assumptionsPath != "" {
		loaded, err := assumption.LoadFile(*assumptionsPath)
		if err != nil {
			log.Fatalf("invalid assumptions: %v", err)
		}
		as = loaded
	}
	if err := as.Validate(); err != nil {
		log.Fatalf("invalid assumptions: %v", err)
	}

	// 2. Scenarios: file-defined or the standard downside case.
	scenarios := []scenario.Definition{scenario.DefaultDownside()}
	if *scenariosPath != "" {
		loaded, err := scenario.LoadDefinitions(*scenariosPath)
		if err != nil {
			log.Fatalf("invalid scenario file: %v", err)
		}
		scenarios = loaded
	}

	// 3. Pipeline, with the run archive enabled when a database is configured.
	ctx := context.Background()
	orchestrator := pipeline.NewOrchestrator(as, log)
	orchestrator.SetMultiple(*multiple)
	if store.Enabled() {
		if err := store.InitDB(ctx); err != nil {
			log.WithError(err).Warn("run archive unavailable")
		} else {
			defer store.Close()
			orchestrator.SetRepository(store.NewRunRepo())
		}
	}

	result, err := orchestrator.Run(ctx, scenarios)
	if err != nil {
		log.Fatalf("forecast failed: %v", err)
	}

	// 4. Terminal report.
	out := os.Stdout
	report.PrintAssumptions(out, as)
	report.PrintRevenueBuild(out, result.Revenue, 12)
	report.PrintCashBudget(out, result.Cash, result.Summary, 12)
	report.PrintAnnualStatements(out, result.Statements)
	for i := range result.Comparisons {
		report.PrintScenario(out, &result.Comparisons[i])
	}

	// 5. Artifacts. Failures here never invalidate the computed series.
	if err := export.WriteWorkbook(*workbookPath, as, result.Revenue, result.Cash, result.Statements); err != nil {
		log.WithError(err).Error("workbook export failed")
	} else {
		log.Infof("workbook written to %s", *workbookPath)
	}
	if err := export.WriteCharts(*chartsPath, result.Cash, result.Statements.Income); err != nil {
		log.WithError(err).Error("chart export failed")
	} else {
		log.Infof("charts written to %s", *chartsPath)
	}
	if *summaryPath != "" {
		md := report.BuildMarkdownSummary(as.Label(), result.Summary, result.Statements, result.Comparisons)
		if err := report.WriteHTMLSummary(*summaryPath, md); err != nil {
			log.WithError(err).Error("summary export failed")
		} else {
			log.Infof("summary written to %s", *summaryPath)
		}
	}
}
