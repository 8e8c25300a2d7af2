package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "intromatch"
)

type Config struct {
	Network    string            `mapstructure:"network"`
	Seeker     string            `mapstructure:"seeker"`
	Matching   *MatchingConfig   `mapstructure:"matching"`
	Similarity *SimilarityConfig `mapstructure:"similarity"`
}

type MatchingConfig struct {
	MaxResults          int      `mapstructure:"max-results"`
	MaxHops             int      `mapstructure:"max-hops"`
	MaxDirectGap        int      `mapstructure:"max-direct-gap"`
	BenefitFloor        float64  `mapstructure:"benefit-floor"`
	ScoreFloor          float64  `mapstructure:"score-floor"`
	WorkerLimit         int      `mapstructure:"worker-limit"`
	DiversityWeight     float64  `mapstructure:"diversity-weight"`
	DiversityDimensions []string `mapstructure:"diversity-dimensions"`
	ParetoOnly          bool     `mapstructure:"pareto-only"`
}

type SimilarityConfig struct {
	Provider   string `mapstructure:"provider"`
	Model      string `mapstructure:"model"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "intromatch is a cli for finding valuable professional introductions in a contact network",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("similarity.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is intromatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only commands touching the network need a config. If there is no config,
	// we can skip initialization.
	if runCmd.CalledAs() == "" && sixdegreesCmd.CalledAs() == "" &&
		connectorsCmd.CalledAs() == "" && reachabilityCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
