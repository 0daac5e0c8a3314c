package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	domain "github.com/complianceworks/geogate/internal/domain/analysis"
)

// Service turns one feature description into an analysis result. Every
// failure class (unconfigured backend, transport error, unparseable reply)
// degrades to a null-flagged result so a batch run never aborts on one row.
type Service struct {
	classifier domain.Classifier
	log        *zap.Logger

	notConfiguredOnce sync.Once
}

// NewService wires a backend client. A nil classifier is allowed and makes
// every non-blank row resolve to a "not initialized" result.
func NewService(classifier domain.Classifier, log *zap.Logger) *Service {
	return &Service{classifier: classifier, log: log}
}

func (s *Service) Analyze(ctx context.Context, description string) domain.Result {
	if strings.TrimSpace(description) == "" {
		return domain.Skipped()
	}

	if s.classifier == nil {
		s.notConfiguredOnce.Do(func() {
			s.log.Warn("no analysis backend configured, emitting null results",
				zap.Error(domain.ErrNotConfigured))
		})
		return domain.Failed("Analysis backend is not initialized. Check the backend configuration.")
	}

	reply, err := s.classifier.Classify(ctx, description)
	if err != nil {
		s.log.Warn("backend call failed", zap.Error(err))
		return domain.Failed(fmt.Sprintf("An error occurred during the backend call: %v", err))
	}

	var res domain.Result
	if err := json.Unmarshal([]byte(reply), &res); err != nil {
		s.log.Warn("backend reply is not valid JSON", zap.Error(err))
		return domain.Failed(fmt.Sprintf("Backend reply could not be parsed as JSON: %v", err))
	}
	if res.RelevantRegulation == "" {
		res.RelevantRegulation = domain.RegulationUnknown
	}
	return res
}
