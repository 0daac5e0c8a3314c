package batch

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appanalysis "github.com/complianceworks/geogate/internal/application/analysis"
	"github.com/complianceworks/geogate/internal/infra/csvio"
)

// Output columns appended to every row, in this order.
const (
	ColGeoComplianceNeeded = "is_geo_compliance_needed"
	ColReasoning           = "reasoning"
	ColRelevantRegulation  = "relevant_regulation"
)

// Required input columns.
const (
	ColFeatureName        = "feature_name"
	ColFeatureDescription = "feature_description"
)

// Service runs a whole input CSV through the analyzer, one row at a time,
// and writes the augmented CSV once every row has a result.
type Service struct {
	analyzer *appanalysis.Service
	log      *zap.Logger
}

func NewService(analyzer *appanalysis.Service, log *zap.Logger) *Service {
	return &Service{analyzer: analyzer, log: log}
}

// Run processes inputPath into outputPath. A missing or unreadable input
// file is fatal and no output is written; per-row backend failures are
// absorbed into null-flagged results and never abort the run.
func (s *Service) Run(ctx context.Context, inputPath, outputPath string) error {
	log := s.log.With(zap.String("run_id", uuid.NewString()))

	table, err := csvio.Read(inputPath)
	if err != nil {
		return fmt.Errorf("input file: %w", err)
	}
	if err := table.Require(ColFeatureName, ColFeatureDescription); err != nil {
		return fmt.Errorf("input file %s: %w", inputPath, err)
	}

	header := make([]string, 0, len(table.Header)+3)
	header = append(header, table.Header...)
	header = append(header, ColGeoComplianceNeeded, ColReasoning, ColRelevantRegulation)

	total := len(table.Rows)
	log.Info("starting analysis", zap.String("input", inputPath), zap.Int("features", total))

	for i, row := range table.Rows {
		log.Info("analyzing feature",
			zap.Int("index", i+1),
			zap.Int("total", total),
			zap.String("feature", row[ColFeatureName]))

		res := s.analyzer.Analyze(ctx, row[ColFeatureDescription])

		row[ColGeoComplianceNeeded] = formatVerdict(res.IsGeoComplianceNeeded)
		row[ColReasoning] = res.Reasoning
		row[ColRelevantRegulation] = res.RelevantRegulation
	}

	if err := csvio.Write(outputPath, header, table.Rows); err != nil {
		return fmt.Errorf("output file: %w", err)
	}
	log.Info("analysis complete", zap.String("output", outputPath))
	return nil
}

// formatVerdict renders the nullable flag for CSV: empty cell when the
// analysis could not run.
func formatVerdict(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
