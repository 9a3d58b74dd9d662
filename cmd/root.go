package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "jobmatch"
	envPrefix = "JOBMATCH"
)

type Config struct {
	ProfileFile string          `mapstructure:"profile-file"`
	CatalogFile string          `mapstructure:"catalog-file"`
	ExcludeFile string          `mapstructure:"exclude-file"`
	Matching    *MatchingConfig `mapstructure:"matching"`
}

type MatchingConfig struct {
	MinimumScore      int      `mapstructure:"minimum-score"`
	Workers           int      `mapstructure:"workers"`
	IncludeArchived   bool     `mapstructure:"include-archived"`
	ExcludeCategories []string `mapstructure:"exclude-categories"`
	ExcludeRejected   bool     `mapstructure:"exclude-rejected"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobmatch scores a job catalog against your profile and suggests how to improve the match",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetDefault("profile-file", "profile.yaml")
	viper.SetDefault("catalog-file", "jobs.yaml")
	viper.SetDefault("matching.workers", 4)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("profile", "", "profile file (default is profile.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "job catalog file (default is jobs.yaml)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("profile-file", rootCmd.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("catalog-file", rootCmd.PersistentFlags().Lookup("catalog"))
}

func initConfig() {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit --config the file is optional: defaults, env and flags are enough.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	if config.Matching == nil {
		config.Matching = &MatchingConfig{}
	}

	return config, nil
}
