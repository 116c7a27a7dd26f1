package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Accounts    AccountsConfig    `yaml:"accounts" mapstructure:"accounts"`
	Assessments AssessmentsConfig `yaml:"assessments" mapstructure:"assessments"`
	Clean       CleanConfig       `yaml:"clean" mapstructure:"clean"`
	Audit       AuditConfig       `yaml:"audit" mapstructure:"audit"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// AccountsConfig sets default enables for the account-removal passes.
type AccountsConfig struct {
	Test    bool   `yaml:"test" mapstructure:"test"`
	Demo    bool   `yaml:"demo" mapstructure:"demo"`
	Pilot   bool   `yaml:"pilot" mapstructure:"pilot"`
	QA      bool   `yaml:"qa" mapstructure:"qa"`
	DropNA  bool   `yaml:"drop_na" mapstructure:"drop_na"`
	Refsets string `yaml:"refsets" mapstructure:"refsets"`
}

// AssessmentsConfig sets default enables for the run-quality passes.
type AssessmentsConfig struct {
	Completed bool `yaml:"completed" mapstructure:"completed"`
	Reliable  bool `yaml:"reliable" mapstructure:"reliable"`
	BestRun   bool `yaml:"best_run" mapstructure:"best_run"`
}

// CleanConfig configures the full cleaning pipeline command.
type CleanConfig struct {
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
	OutputDir   string `yaml:"output_dir" mapstructure:"output_dir"`
	GradeColumn string `yaml:"grade_column" mapstructure:"grade_column"`
	OptOutPath  string `yaml:"optout_path" mapstructure:"optout_path"`
}

// AuditConfig configures the optional run-audit database.
type AuditConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SURVEYCLEAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("accounts.test", true)
	v.SetDefault("accounts.demo", true)
	v.SetDefault("accounts.pilot", true)
	v.SetDefault("accounts.qa", true)
	v.SetDefault("accounts.drop_na", false)
	v.SetDefault("assessments.completed", true)
	v.SetDefault("assessments.reliable", false)
	v.SetDefault("assessments.best_run", false)
	v.SetDefault("clean.concurrency", 3)
	v.SetDefault("clean.output_dir", ".")
	v.SetDefault("clean.grade_column", "grade")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
