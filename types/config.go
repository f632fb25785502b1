package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose    bool             `mapstructure:"verbose"`
	Config     string           `mapstructure:"config"`
	Project    ProjectConfig    `mapstructure:"project" validate:"required"`
	Data       DataConfig       `mapstructure:"data" validate:"required"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter" validate:"omitempty"`
}

// ProjectConfig holds project-related settings.
type ProjectConfig struct {
	RootDir  string `mapstructure:"rootDir" validate:"required"`
	TasksDir string `mapstructure:"tasksDir" validate:"required"`
}

// DataConfig holds data storage configuration.
type DataConfig struct {
	File            string `mapstructure:"file" validate:"required"`
	Format          string `mapstructure:"format" validate:"required,oneof=json yaml"`
	CredentialsFile string `mapstructure:"credentialsFile" validate:"required"`
}

// OpenRouterConfig holds configuration for the AI completion provider.
type OpenRouterConfig struct {
	Model       string  `mapstructure:"model" validate:"omitempty,min=1"`
	APIKey      string  `mapstructure:"apiKey" validate:"omitempty,min=1"`
	BaseURL     string  `mapstructure:"baseUrl" validate:"omitempty,url"`
	MaxTokens   int     `mapstructure:"maxTokens" validate:"omitempty,min=1"`
	Temperature float64 `mapstructure:"temperature" validate:"omitempty,min=0,max=2"`
	// RequestTimeoutSeconds controls the HTTP client timeout for completion calls.
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
}
