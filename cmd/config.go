package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/taskfold/taskfold/types"
)

const (
	configName = ".taskfold"
	envPrefix  = "TASKFOLD"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance, it caches struct info.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. A missing .env is not an error.
	_ = godotenv.Load()

	// Environment variable handling must be set up BEFORE reading the config
	// file, so that env vars can influence config loading.
	viper.SetEnvPrefix(envPrefix) // e.g., TASKFOLD_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // project.rootDir -> TASKFOLD_PROJECT_ROOTDIR

	cfgFileFlag := viper.GetString("config") // Value from --config flag

	// The config file lives inside the project config dir (.taskfold by
	// default). We need that dir name before the full unmarshal to locate
	// the config file itself.
	projectConfigDir := viper.GetString("project.rootDir")
	if projectConfigDir == "" {
		projectConfigDir = ".taskfold"
	}

	if cfgFileFlag != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFileFlag)
	} else {
		if _, err := os.Stat(projectConfigDir); !os.IsNotExist(err) {
			// Project-specific config directory exists. Prioritize it.
			viper.AddConfigPath(projectConfigDir) // ./.taskfold/.taskfold.yaml
			viper.SetConfigName(configName)
		} else {
			// Fall back to home and current directory for a global config.
			home, err := os.UserHomeDir()
			cobra.CheckErr(err)
			viper.AddConfigPath(home) // $HOME/.taskfold.yaml
			viper.AddConfigPath(".")  // ./.taskfold.yaml
			viper.SetConfigName(configName)
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	// Set default values
	viper.SetDefault("project.rootDir", ".taskfold")
	viper.SetDefault("project.bankDir", "memory-bank")
	viper.SetDefault("project.plansDir", "memory-bank/work-plans")
	viper.SetDefault("project.logDir", "logs")
	viper.SetDefault("project.logLevel", "info")
	viper.SetDefault("project.currentPlan", "")
	viper.SetDefault("data.format", "json")
	viper.SetDefault("planner.defaultComplexity", "medium")
	viper.SetDefault("planner.maxTaskMinutes", 45)
	viper.SetDefault("planner.minTaskMinutes", 10)

	// After all sources are configured, unmarshal into GlobalAppConfig
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	// Ensure critical project paths are set, falling back to Viper's defaults
	// if empty after unmarshal. This handles config files that exist but are
	// missing these specific nested keys.
	if GlobalAppConfig.Project.RootDir == "" {
		GlobalAppConfig.Project.RootDir = viper.GetString("project.rootDir")
	}
	if GlobalAppConfig.Project.BankDir == "" {
		GlobalAppConfig.Project.BankDir = viper.GetString("project.bankDir")
	}
	if GlobalAppConfig.Project.PlansDir == "" {
		GlobalAppConfig.Project.PlansDir = filepath.Join(GlobalAppConfig.Project.BankDir, "work-plans")
	}
	if GlobalAppConfig.Project.LogDir == "" {
		GlobalAppConfig.Project.LogDir = viper.GetString("project.logDir")
	}

	// Validate the populated configuration
	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// SetCurrentPlan updates the current plan name in the configuration and persists it.
func SetCurrentPlan(name string) error {
	GlobalAppConfig.Project.CurrentPlan = name
	viper.Set("project.currentPlan", name)

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		// No config file exists, create a project-specific one
		projectConfigDir := GlobalAppConfig.Project.RootDir
		if err := os.MkdirAll(projectConfigDir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		configFile = filepath.Join(projectConfigDir, ".taskfold.yaml")
		viper.SetConfigFile(configFile)
	}

	return viper.WriteConfig()
}

// GetCurrentPlan returns the current plan name from configuration.
func GetCurrentPlan() string {
	return GlobalAppConfig.Project.CurrentPlan
}

// ClearCurrentPlan removes the current plan from configuration.
func ClearCurrentPlan() error {
	return SetCurrentPlan("")
}
