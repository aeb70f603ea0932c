package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// AnalyticsFetcher supplies the raw analytics document from the backend.
type AnalyticsFetcher interface {
	ReportsAnalytics(ctx context.Context) (json.RawMessage, error)
}

// DefaultReportMetrics maps report metric names onto JMESPath expressions
// over the backend analytics document. The admin reports page renders these
// without binding the document's full shape into Go types.
var DefaultReportMetrics = map[string]string{
	"total_enrollments":  "enrollment.total",
	"enrollment_trend":   "enrollment.monthly[*].count",
	"revenue_total":      "revenue.total",
	"revenue_by_month":   "revenue.monthly[*].{month: month, amount: amount}",
	"top_courses":        "courses.popular[:5].title",
	"average_attendance": "attendance.averagePercentage",
	"pass_rate":          "tests.passRate",
}

// ReportsServiceOptions groups dependencies for ReportsService.
type ReportsServiceOptions struct {
	Fetcher AnalyticsFetcher
	// Metrics overrides DefaultReportMetrics when non-nil.
	Metrics   map[string]string
	Evaluator JMESPathEvaluator
}

// ReportsService extracts named metrics from the backend's analytics
// document with JMESPath expressions.
type ReportsService struct {
	fetcher AnalyticsFetcher
	metrics map[string]string
	jems    JMESPathEvaluator
}

// NewReportsService constructs a ReportsService, validating every metric
// expression up front so misconfiguration surfaces at startup rather than
// on the first page view.
func NewReportsService(opts ReportsServiceOptions) (*ReportsService, error) {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = DefaultReportMetrics
	}
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	for name, expr := range metrics {
		if strings.TrimSpace(expr) == "" {
			return nil, fmt.Errorf("metric %q has an empty expression", name)
		}
		if err := jems.Validate(expr); err != nil {
			return nil, fmt.Errorf("metric %q: %w", name, err)
		}
	}
	return &ReportsService{fetcher: opts.Fetcher, metrics: metrics, jems: jems}, nil
}

// MetricNames lists the configured metric names in a stable order.
func (s *ReportsService) MetricNames() []string {
	names := make([]string, 0, len(s.metrics))
	for name := range s.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extract fetches the analytics document and evaluates every configured
// metric. Metrics whose path is absent from the document come back as nil
// values rather than errors; the document's shape is owned by the backend
// and may drift ahead of the portal.
func (s *ReportsService) Extract(ctx context.Context) (map[string]any, error) {
	raw, err := s.fetcher.ReportsAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch analytics: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode analytics: %w", err)
	}

	out := make(map[string]any, len(s.metrics))
	for name, expr := range s.metrics {
		value, err := s.jems.Evaluate(expr, doc)
		if err != nil {
			return nil, fmt.Errorf("evaluate metric %q: %w", name, err)
		}
		out[name] = value
	}
	return out, nil
}

// Metric evaluates a single configured metric by name.
func (s *ReportsService) Metric(ctx context.Context, name string) (any, error) {
	expr, ok := s.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", name)
	}

	raw, err := s.fetcher.ReportsAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch analytics: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode analytics: %w", err)
	}

	value, err := s.jems.Evaluate(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluate metric %q: %w", name, err)
	}
	return value, nil
}
