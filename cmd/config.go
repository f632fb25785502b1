package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tasktamer/tasktamer/types"
)

const (
	configName = ".tasktamer"
	envPrefix  = "TASKTAMER"
)

// appConfig holds the unmarshaled application configuration.
var appConfig types.AppConfig

// validateConfig is a single validator instance; it caches struct info.
var validateConfig = validator.New()

// InitConfig reads in the config file and environment variables if set.
// Precedence is flags > env (TASKTAMER_*) > config file > defaults; a .env
// file in the working directory is loaded first if present.
func InitConfig() {
	// Missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")

	projectConfigDir := viper.GetString("project.rootDir")
	if projectConfigDir == "" {
		projectConfigDir = ".tasktamer"
	}

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		if _, err := os.Stat(projectConfigDir); !os.IsNotExist(err) {
			viper.AddConfigPath(projectConfigDir)
			viper.SetConfigName(configName)
		} else {
			home, err := os.UserHomeDir()
			if err == nil {
				viper.AddConfigPath(home)
			}
			viper.AddConfigPath(".")
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
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	viper.SetDefault("project.rootDir", ".tasktamer")
	viper.SetDefault("project.tasksDir", "tasks")

	viper.SetDefault("data.file", "tasks.json")
	viper.SetDefault("data.format", "json")
	viper.SetDefault("data.credentialsFile", "credentials.json")

	viper.SetDefault("openrouter.model", "openai/gpt-3.5-turbo")
	viper.SetDefault("openrouter.maxTokens", 500)
	viper.SetDefault("openrouter.temperature", 0.7)
	viper.SetDefault("openrouter.requestTimeoutSeconds", 60)

	if err := viper.Unmarshal(&appConfig); err != nil {
		fmt.Fprintln(os.Stderr, "Error: failed to unmarshal configuration:", err)
		os.Exit(1)
	}

	if err := validateConfig.Struct(&appConfig); err != nil {
		fmt.Fprintln(os.Stderr, "Error: invalid configuration:", err)
		os.Exit(1)
	}
}

// GetConfig returns the unmarshaled application configuration.
func GetConfig() *types.AppConfig {
	return &appConfig
}
