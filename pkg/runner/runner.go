package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-series/internal/logger"
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/datasource"
	"github.com/rxtech-lab/argo-series/pkg/errors"
	"github.com/rxtech-lab/argo-series/pkg/indicator"
	"github.com/rxtech-lab/argo-series/pkg/series"
	"github.com/rxtech-lab/argo-series/pkg/writer"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Runner executes one computation run: load bars, compute the configured
// indicators over them, write the result file.
type Runner struct {
	config *Config
	logger *logger.Logger
}

// NewRunner creates a runner for the given config.
func NewRunner(config *Config, log *logger.Logger) *Runner {
	return &Runner{
		config: config,
		logger: log,
	}
}

// Run loads the configured bars, computes every configured indicator to the
// end of the series under one session, and writes the result CSV. It returns
// the run directory.
func (r *Runner) Run(ctx context.Context) (string, error) {
	bars, err := r.loadBars()
	if err != nil {
		return "", err
	}

	if len(bars) == 0 {
		return "", errors.New(errors.ErrCodeEmptySeries, "Run: data source returned no bars")
	}

	b := series.New()

	bar := progressbar.Default(int64(len(bars)), "Loading bars")
	for _, barData := range bars {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if _, err := b.Append(barData); err != nil {
			return "", err
		}

		_ = bar.Add(1)
	}

	columns, err := r.computeIndicators(b)
	if err != nil {
		return "", err
	}

	csvWriter, err := writer.NewCSVWriter(r.config.Output)
	if err != nil {
		return "", err
	}
	defer csvWriter.Close()

	if err := csvWriter.WriteSeries(b, columns); err != nil {
		return "", err
	}

	r.logger.Info("Run complete",
		zap.Int("bars", len(bars)),
		zap.Int("indicators", len(r.config.Indicators)),
		zap.String("output", csvWriter.RunDir()))

	return csvWriter.RunDir(), nil
}

func (r *Runner) loadBars() ([]types.Bar, error) {
	switch r.config.Source {
	case SourceTypeCSV:
		return datasource.NewCSVSource(r.config.Data, r.logger).ReadAll()
	case SourceTypeDuckDB:
		src, err := datasource.NewDuckDBSource(r.config.Data, r.logger)
		if err != nil {
			return nil, err
		}
		defer src.Close()

		return src.ReadAll()
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfig, "loadBars: unknown source type %q", r.config.Source)
	}
}

// computeIndicators builds each configured indicator through the series
// registry, computes it to the end of the axis under a fresh session, and
// returns the labeled output columns.
func (r *Runner) computeIndicators(b *series.BaseSeries) ([]writer.Column, error) {
	sessionID := time.Now().UnixNano()

	var columns []writer.Column

	for _, cfg := range r.config.Indicators {
		ind, err := buildIndicator(b, cfg)
		if err != nil {
			return nil, err
		}

		ind.ComputeAll(sessionID)

		for _, out := range ind.Outputs() {
			columns = append(columns, writer.Column{
				Label: columnLabel(cfg, out),
				Var:   out,
			})
		}
	}

	return columns, nil
}

// buildIndicator maps an indicator config onto a registry constructor,
// defaulting the parameters the config leaves at zero.
func buildIndicator(b *series.BaseSeries, cfg IndicatorConfig) (indicator.Indicator, error) {
	period := defaultInt(cfg.Period, 14)

	switch cfg.Kind {
	case types.IndicatorTypeMA:
		return indicator.SharedMA(b, b.Close(), period), nil
	case types.IndicatorTypeEMA:
		return indicator.SharedEMA(b, b.Close(), period), nil
	case types.IndicatorTypeWMA:
		return indicator.SharedWMA(b, b.Close(), period), nil
	case types.IndicatorTypeSum:
		return indicator.SharedSum(b, b.Close(), period), nil
	case types.IndicatorTypeStdDev:
		return indicator.SharedStdDev(b, b.Close(), period), nil
	case types.IndicatorTypeRSI:
		return indicator.SharedRSI(b, period), nil
	case types.IndicatorTypeMACD:
		fast := defaultInt(cfg.FastPeriod, 12)
		slow := defaultInt(cfg.SlowPeriod, 26)
		if fast >= slow {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter,
				"buildIndicator: macd fast period %d must be less than slow period %d", fast, slow)
		}

		return indicator.SharedMACD(b, b.Close(), fast, slow,
			defaultInt(cfg.SignalPeriod, 9)), nil
	case types.IndicatorTypeBollingerBands:
		return indicator.SharedBollingerBands(b, b.Close(),
			defaultInt(cfg.Period, 20),
			defaultFloat(cfg.Width, 2.0)), nil
	case types.IndicatorTypeTR:
		return indicator.SharedTR(b), nil
	case types.IndicatorTypeATR:
		return indicator.SharedATR(b, period), nil
	case types.IndicatorTypeDMI:
		return indicator.SharedDMI(b, period), nil
	case types.IndicatorTypeADX:
		return indicator.SharedADX(b, period), nil
	case types.IndicatorTypeStochastic:
		return indicator.SharedStochastic(b,
			defaultInt(cfg.KPeriod, 14),
			defaultInt(cfg.DPeriod, 3)), nil
	case types.IndicatorTypeWilliamsR:
		return indicator.SharedWilliamsR(b, period), nil
	case types.IndicatorTypeCCI:
		return indicator.SharedCCI(b, defaultInt(cfg.Period, 20)), nil
	case types.IndicatorTypeOBV:
		return indicator.SharedOBV(b), nil
	case types.IndicatorTypeZigZag:
		return indicator.SharedZigZag(b, defaultFloat(cfg.Reversal, 0.05)), nil
	default:
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "buildIndicator: unknown indicator kind %q", cfg.Kind)
	}
}

// columnLabel builds a stable header label like "rsi_14.rsi".
func columnLabel(cfg IndicatorConfig, out *series.TVar) string {
	label := string(cfg.Kind)
	if cfg.Period > 0 {
		label = fmt.Sprintf("%s_%d", label, cfg.Period)
	}

	return label + "." + out.Name()
}

func defaultInt(v, def int) int {
	if v > 0 {
		return v
	}

	return def
}

func defaultFloat(v, def float64) float64 {
	if v > 0 {
		return v
	}

	return def
}
