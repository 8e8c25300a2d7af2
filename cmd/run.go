package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spigell/intromatch/internal/ai"
	"github.com/spigell/intromatch/internal/cache"
	"github.com/spigell/intromatch/internal/graph"
	"github.com/spigell/intromatch/internal/logger"
	"github.com/spigell/intromatch/internal/matching"
	"github.com/spigell/intromatch/internal/mutual"
	"github.com/spigell/intromatch/internal/needs"
	"github.com/spigell/intromatch/internal/network"
	"github.com/spigell/intromatch/internal/secrets"
	"github.com/spigell/intromatch/internal/strategy"
	"github.com/spigell/intromatch/internal/tiers"
	"github.com/spigell/intromatch/internal/value"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes              = "Yes"
	PromptNo               = "No"
	PromptReportByIndustry = "Report by industry"
	PromptMatchesToFile    = "Dump matches to file"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Show the detailed report?",
	Items: []string{PromptYes, PromptNo, PromptReportByIndustry, PromptMatchesToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the intromatch main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation, print the detailed report and exit")
	runCmd.Flags().StringP("seeker", "s", "", "contact id to find introductions for. Overrides the config.")
	runCmd.Flags().IntP("max-results", "n", 0, "maximum number of matches to return")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the intromatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Network == "" {
		logger.Fatal("network snapshot path is required under the 'network' key")
	}

	seekerID := resolveSeeker(cmd, config)
	if seekerID == "" {
		logger.Fatal("seeker contact id is required",
			zap.String("hint", "set the 'seeker' key in the configuration file or pass --seeker"),
		)
	}

	engine, snap, err := buildEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the matching engine", zap.Error(err))
	}

	logger.Info("loaded the network snapshot",
		zap.String("path", config.Network),
		zap.Int("contacts", len(snap.Contacts)),
		zap.Int("connections", len(snap.Connections)),
	)

	maxResults, _ := cmd.Flags().GetInt("max-results")

	matches, err := engine.FindMatches(ctx, seekerID, maxResults)
	if err != nil {
		logger.Fatal("finding matches", zap.Error(err))
	}

	if len(matches) == 0 {
		logger.Info("exiting", zap.String("reason", "no matches found"))
		return
	}

	autoApprove := cmd.Flag("auto-approve").Value.String() == "true"

	action := PromptYes
	for {
		var err error
		if !autoApprove {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of matches", zap.Int("count", len(matches)))

		if err := handleAction(action, logger, matches); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if autoApprove {
			return
		}
	}
}

func handleAction(action string, logger *zap.Logger, matches []*matching.EnhancedMatch) error {
	switch action {
	case PromptYes:
		pretty, _ := json.MarshalIndent(matchReport(matches), "", "  ")
		logger.Info(string(pretty), zap.Int("matches count", len(matches)))
		return nil
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByIndustry:
		pretty, _ := json.MarshalIndent(matchedContacts(matches).ReportByIndustry(), "", "  ")
		logger.Info(string(pretty), zap.Int("matches count", len(matches)))
		return nil
	case PromptMatchesToFile:
		filename, err := dumpMatches(matches)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// buildEngine wires the snapshot-backed repositories and every scoring
// collaborator into a matching engine.
func buildEngine(ctx context.Context, config *Config, log *zap.Logger) (*matching.Engine, *network.Snapshot, error) {
	snap, err := network.LoadSnapshot(config.Network)
	if err != nil {
		return nil, nil, fmt.Errorf("loading network snapshot: %w", err)
	}

	traversalCache, err := cache.New(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating traversal cache: %w", err)
	}

	scorer, err := newScorer(ctx, config.Similarity, log)
	if err != nil {
		return nil, nil, err
	}

	assessor := value.NewAssessor(scorer, log)

	deps := matching.Deps{
		Contacts:    snap,
		Connections: snap,
		Traversal:   graph.NewTraversal(graph.FromSnapshot(snap), traversalCache),
		Classifier:  tiers.NewClassifier(log, 0),
		Analyzer:    needs.NewAnalyzer(0),
		Assessor:    assessor,
		Gatekeeper:  value.NewGatekeeper(assessor, log),
		Validator:   mutual.NewValidator(scorer, log),
		Selector:    strategy.NewSelector(),
		Logger:      log,
	}

	engine, err := matching.NewEngine(deps, matchingConfig(config.Matching))
	if err != nil {
		return nil, nil, err
	}

	return engine, snap, nil
}

// newScorer resolves the optional embedding-backed similarity scorer. A nil
// scorer means literal token overlap.
func newScorer(ctx context.Context, config *SimilarityConfig, log *zap.Logger) (needs.Scorer, error) {
	if config == nil || strings.TrimSpace(config.Provider) == "" {
		return nil, nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set similarity.api-key-file or GEMINI_API_KEY)", err)
	}

	return ai.NewScorer(ctx, &ai.Config{
		Provider: config.Provider,
		APIKey:   apiKey,
		Model:    config.Model,
	}, log)
}

func matchingConfig(config *MatchingConfig) matching.Config {
	if config == nil {
		return matching.Config{}
	}
	return matching.Config{
		MaxResults:          config.MaxResults,
		MaxHops:             config.MaxHops,
		MaxDirectGap:        config.MaxDirectGap,
		BenefitFloor:        config.BenefitFloor,
		ScoreFloor:          config.ScoreFloor,
		WorkerLimit:         config.WorkerLimit,
		DiversityWeight:     config.DiversityWeight,
		DiversityDimensions: config.DiversityDimensions,
		ParetoOnly:          config.ParetoOnly,
	}
}

func resolveSeeker(cmd *cobra.Command, config *Config) string {
	if cmd != nil {
		if flag := cmd.Flag("seeker"); flag != nil && flag.Value.String() != "" {
			return flag.Value.String()
		}
	}
	return strings.TrimSpace(config.Seeker)
}

func matchedContacts(matches []*matching.EnhancedMatch) *network.Contacts {
	contacts := &network.Contacts{}
	for _, match := range matches {
		contacts.Items = append(contacts.Items, match.Candidate)
	}
	return contacts
}

// matchReport flattens matches into a human-readable summary.
func matchReport(matches []*matching.EnhancedMatch) []map[string]any {
	report := make([]map[string]any, 0, len(matches))
	for _, match := range matches {
		entry := map[string]any{
			"candidate":      match.Candidate.String(),
			"tier":           match.CandidateTier.Tier.String(),
			"tier_gap":       match.TierGap,
			"overall_score":  fmt.Sprintf("%.1f", match.OverallScore),
			"priority":       string(match.Priority),
			"pareto_optimal": match.ParetoOptimal,
			"reasons":        match.Reasons,
		}

		if match.Path != nil {
			entry["path"] = match.Path.Nodes
		}
		if match.Gatekeeper != nil {
			entry["gatekeeper_score"] = fmt.Sprintf("%.1f", match.Gatekeeper.Score)
		}
		if len(match.TradeOffs) > 0 {
			entry["trade_offs"] = match.TradeOffs
		}

		report = append(report, entry)
	}
	return report
}

func dumpMatches(matches []*matching.EnhancedMatch) (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(matches); err != nil {
		return "", err
	}
	return file.Name(), nil
}
