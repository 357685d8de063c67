package report

import (
	"context"
	"fmt"
	"time"

	"bookscape/internal/logger"
	"bookscape/internal/metrics"
)

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List() []Definition {
	return Catalog()
}

// Run executes the named report. The placeholder report never reaches the
// repository.
func (s *Service) Run(ctx context.Context, name string) (Result, error) {
	def, ok := Lookup(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownReport, name)
	}
	if def.Placeholder {
		metrics.ReportRuns.WithLabelValues(string(def.Name), metrics.OutcomeOK).Inc()
		return placeholderResult(), nil
	}

	start := time.Now()
	res, err := s.repo.Query(ctx, def.Query)
	metrics.ReportDuration.WithLabelValues(string(def.Name)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ReportRuns.WithLabelValues(string(def.Name), metrics.OutcomeError).Inc()
		s.log.Error("report failed", logger.String("report", string(def.Name)), logger.Error(err))
		return Result{}, fmt.Errorf("run report %s: %w", def.Name, err)
	}
	metrics.ReportRuns.WithLabelValues(string(def.Name), metrics.OutcomeOK).Inc()
	s.log.Debug("report completed", logger.String("report", string(def.Name)), logger.Int("rows", len(res.Rows)))
	return res, nil
}
