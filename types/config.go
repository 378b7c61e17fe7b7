package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Planner PlannerConfig `mapstructure:"planner" validate:"omitempty"`
}

// ProjectConfig holds project-layout settings
type ProjectConfig struct {
	RootDir     string `mapstructure:"rootDir" validate:"required"`
	BankDir     string `mapstructure:"bankDir" validate:"required"`
	PlansDir    string `mapstructure:"plansDir" validate:"required"`
	LogDir      string `mapstructure:"logDir" validate:"required"`
	LogLevel    string `mapstructure:"logLevel" validate:"omitempty,oneof=debug info warn error"`
	CurrentPlan string `mapstructure:"currentPlan"`
}

// DataConfig holds plan storage configuration
type DataConfig struct {
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// PlannerConfig tunes the plan construction heuristics
type PlannerConfig struct {
	DefaultComplexity string `mapstructure:"defaultComplexity" validate:"omitempty,oneof=low medium high"`
	// MaxTaskMinutes is the estimate above which a task should be split.
	MaxTaskMinutes int `mapstructure:"maxTaskMinutes" validate:"omitempty,min=1"`
	// MinTaskMinutes is the estimate below which a task is flagged for merging.
	MinTaskMinutes int `mapstructure:"minTaskMinutes" validate:"omitempty,min=1"`
}
