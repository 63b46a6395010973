package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/harville-prober/internal/config"
	"github.com/yourusername/harville-prober/internal/logger"
	"github.com/yourusername/harville-prober/internal/metrics"
	"github.com/yourusername/harville-prober/internal/probability"
	"github.com/yourusername/harville-prober/internal/service"
	"github.com/yourusername/harville-prober/internal/staking"
)

// app holds what every subcommand needs once configuration is loaded.
type app struct {
	configFile  string
	logLevel    string
	dumpMetrics bool

	cfg    *config.Config
	logger *logrus.Logger
	pricer *service.Pricer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "prober",
		Short:         "Harville pool probabilities and Kelly stakes",
		Long:          `Computes pari-mutuel pool probabilities from win odds or model weights using the Harville formula, and sizes Kelly stakes on the win pool.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.dumpMetrics {
				return metrics.WriteText(cmd.ErrOrStderr())
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Path to configuration file (optional)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override the configured log level")
	root.PersistentFlags().BoolVar(&a.dumpMetrics, "metrics", false, "Write Prometheus metrics to stderr on exit")

	root.AddCommand(newPoolCmd(a), newStakeCmd(a), newPoolsCmd())
	return root
}

func (a *app) setup() error {
	cfg, err := config.LoadWithDefaults(a.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.logLevel != "" {
		cfg.App.LogLevel = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logger.NewEnvironmentLogger(cfg.App.LogLevel, cfg.App.Environment)

	if cfg.Metrics.Enabled || a.dumpMetrics {
		metrics.InitRegistry()
	}

	a.pricer, err = service.NewPricer(cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create pricer: %w", err)
	}
	return nil
}

func newPoolCmd(a *app) *cobra.Command {
	var (
		poolName string
		odds     []float64
		weights  []float64
		names    []string
	)

	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Print the probabilities of one pool as JSON",
		Example: `  prober pool --pool place --weights 0.1,0.2,0.2,0.05,0.05,0.3,0.1
  prober pool --pool trio --odds 4.5,3,6,12,9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := probability.ParsePool(strings.TrimSpace(poolName))
			if err != nil {
				return err
			}

			if len(odds) == 0 {
				if len(weights) == 0 {
					return fmt.Errorf("one of --odds or --weights is required")
				}
				return a.poolFromWeights(cmd.OutOrStdout(), pool, weights)
			}

			card, err := buildCard(names, odds, weights)
			if err != nil {
				return err
			}
			price, err := a.pricer.Price(cmd.Context(), card, pool)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), price)
		},
	}

	cmd.Flags().StringVarP(&poolName, "pool", "p", string(probability.PoolWin), "Pool: win, quinella, tierce, trio, place, place_q, quartet, first_4")
	cmd.Flags().Float64SliceVar(&odds, "odds", nil, "Decimal win odds per runner")
	cmd.Flags().Float64SliceVar(&weights, "weights", nil, "Win probabilities or model weights per runner")
	cmd.Flags().StringSliceVar(&names, "names", nil, "Runner names (defaults to indices)")
	return cmd
}

func (a *app) poolFromWeights(w io.Writer, pool probability.Pool, weights []float64) error {
	coefficients, err := a.cfg.CorrectionCoefficients()
	if err != nil {
		return err
	}
	engine, err := probability.New(weights,
		probability.WithCoefficients(coefficients),
		probability.WithLogger(a.logger),
		probability.WithMaxCompetitors(a.cfg.Engine.MaxCompetitors),
	)
	if err != nil {
		return err
	}
	probs, err := engine.Transform(pool)
	if err != nil {
		return err
	}
	return writeJSON(w, probs)
}

func newStakeCmd(a *app) *cobra.Command {
	var (
		odds     []float64
		probs    []float64
		names    []string
		bankroll string
	)

	cmd := &cobra.Command{
		Use:     "stake",
		Short:   "Size Kelly stakes across the runners of a win pool",
		Example: `  prober stake --odds 1.87,3.4,3.4 --prob 0.592,0.285,0.123 --names horse1,horse2,horse3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := decimal.NewFromFloat(a.cfg.Staking.Bankroll)
			if bankroll != "" {
				parsed, err := decimal.NewFromString(bankroll)
				if err != nil {
					return fmt.Errorf("invalid bankroll %q: %w", bankroll, err)
				}
				amount = parsed
			}

			if len(probs) == 0 {
				card, err := buildCard(names, odds, nil)
				if err != nil {
					return err
				}
				plan, err := a.pricer.Stake(cmd.Context(), card, amount)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), plan)
			}

			bettor, err := staking.NewMultiKelly(odds, probs, names, a.logger)
			if err != nil {
				return err
			}
			allocations := bettor.Transform().Scale(a.cfg.Staking.KellyFraction)
			plan := &service.StakePlan{
				KellyFraction:   a.cfg.Staking.KellyFraction,
				Allocations:     allocations,
				TotalProportion: allocations.Total(),
			}
			if amount.IsPositive() {
				plan.Stakes = allocations.Stakes(amount)
			}
			return writeJSON(cmd.OutOrStdout(), plan)
		},
	}

	cmd.Flags().Float64SliceVar(&odds, "odds", nil, "Decimal win odds per runner")
	cmd.Flags().Float64SliceVar(&probs, "prob", nil, "Win probabilities per runner (defaults to the odds-implied Harville win pool)")
	cmd.Flags().StringSliceVar(&names, "names", nil, "Runner names (defaults to indices)")
	cmd.Flags().StringVar(&bankroll, "bankroll", "", "Bankroll to convert proportions into stakes")
	_ = cmd.MarkFlagRequired("odds")
	return cmd
}

func newPoolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pools",
		Short: "List supported pools and their minimum field sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			type poolInfo struct {
				Pool           probability.Pool `json:"pool"`
				OrderLevel     int              `json:"order_level"`
				MinCompetitors int              `json:"min_competitors"`
				Ordered        bool             `json:"ordered"`
			}
			out := make([]poolInfo, len(probability.Pools))
			for i, p := range probability.Pools {
				out[i] = poolInfo{Pool: p, OrderLevel: p.Level(), MinCompetitors: p.MinCompetitors() + 1, Ordered: p.Ordered()}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

func buildCard(names []string, odds, weights []float64) (*service.RaceCard, error) {
	if len(names) == 0 {
		names = make([]string, len(odds))
		for i := range names {
			names[i] = strconv.Itoa(i)
		}
	}
	card, err := service.NewRaceCard(names, odds)
	if err != nil {
		return nil, err
	}
	if len(weights) > 0 {
		if len(weights) != len(odds) {
			return nil, fmt.Errorf("%d weights for %d odds", len(weights), len(odds))
		}
		for i, w := range weights {
			card.Runners[i].Weight = w
		}
	}
	return card, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
