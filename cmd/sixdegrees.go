package cmd

import (
	"context"
	"encoding/json"
	"log"

	"github.com/spigell/intromatch/internal/graph"
	"github.com/spigell/intromatch/internal/logger"
	"github.com/spigell/intromatch/internal/matching"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var sixdegreesCmd = &cobra.Command{
	Use:   "sixdegrees <from> <to>",
	Short: "Verify that two contacts are connected within six degrees of separation",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		sixdegrees(cmd, args[0], args[1])
	},
}

var connectorsCmd = &cobra.Command{
	Use:   "connectors",
	Short: "Rank the network's super-connectors",
	Run: func(cmd *cobra.Command, _ []string) {
		connectors(cmd)
	},
}

var reachabilityCmd = &cobra.Command{
	Use:   "reachability <contact>",
	Short: "Report how much of the network a contact can reach",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reachability(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(sixdegreesCmd)
	rootCmd.AddCommand(connectorsCmd)
	rootCmd.AddCommand(reachabilityCmd)

	sixdegreesCmd.Flags().IntP("alternatives", "a", 0, "also search for up to N alternative paths and shared connectors")
	connectorsCmd.Flags().IntP("top", "t", 10, "number of super-connectors to rank")
}

func sixdegrees(cmd *cobra.Command, from, to string) {
	ctx := context.Background()
	logger, engine := analysisSetup(ctx)

	result, err := engine.VerifySixDegrees(ctx, from, to)
	if err != nil {
		logger.Fatal("verifying six degrees", zap.Error(err))
	}

	fields := []zap.Field{
		zap.Bool("connected", result.Connected),
		zap.Int("degrees", result.Degrees),
	}
	if result.Path != nil {
		fields = append(fields, zap.Strings("path", result.Path.Nodes))
	}
	logger.Info(result.Insight, fields...)

	alternatives, _ := cmd.Flags().GetInt("alternatives")
	if alternatives <= 0 || result.Path == nil {
		return
	}

	paths, err := engine.AlternativePaths(ctx, from, to, alternatives)
	if err != nil {
		logger.Fatal("searching alternative paths", zap.Error(err))
	}

	for _, path := range paths {
		logger.Info("alternative path",
			zap.Strings("path", path.Nodes),
			zap.Int("hops", path.Hops()),
			zap.Float64("avg_strength", path.AvgStrength()),
			zap.Float64("avg_trust", path.AvgTrust()),
		)
	}

	for _, connector := range graph.ConnectorNodes(paths) {
		logger.Info("shared connector",
			zap.String("contact_id", connector.ID),
			zap.Int("paths", connector.Count),
		)
	}
}

func connectors(cmd *cobra.Command) {
	ctx := context.Background()
	logger, engine := analysisSetup(ctx)

	topN, _ := cmd.Flags().GetInt("top")

	ranked, err := engine.SuperConnectors(topN)
	if err != nil {
		logger.Fatal("ranking super-connectors", zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(ranked, "", "  ")
	logger.Info(string(pretty), zap.Int("connectors count", len(ranked)))
}

func reachability(_ *cobra.Command, id string) {
	ctx := context.Background()
	logger, engine := analysisSetup(ctx)

	report, err := engine.AnalyzeReachability(ctx, id)
	if err != nil {
		logger.Fatal("analyzing reachability", zap.Error(err))
	}

	logger.Info("reachability report",
		zap.String("contact_id", report.ContactID),
		zap.Int("reachable", report.Reachable),
		zap.Int("network_size", report.NetworkSize),
		zap.Float64("percent_of_network", report.PercentOfNetwork),
		zap.Float64("average_degree", report.AverageDegree),
		zap.Int("strong_ties", report.StrongTies),
		zap.Int("weak_ties", report.WeakTies),
	)
}

// analysisSetup builds the logger and engine shared by the analysis commands.
func analysisSetup(ctx context.Context) (*zap.Logger, *matching.Engine) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil || config.Network == "" {
		logger.Fatal("network snapshot path is required under the 'network' key")
	}

	engine, _, err := buildEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the matching engine", zap.Error(err))
	}

	return logger, engine
}
