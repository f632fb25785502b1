package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tasktamer/tasktamer/openrouter"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage the OpenRouter API key",
	Long: `Manage the OpenRouter API key used by the breakdown command. The key
is stored in its own credentials file, owner-readable only, separate from
the task data.`,
}

var apikeySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store an API key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			fmt.Print("Enter OpenRouter API key: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}
			key = string(raw)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("API key cannot be empty")
		}

		credStore, err := GetCredentialStore()
		if err != nil {
			return fmt.Errorf("could not load credentials: %w", err)
		}
		if err := credStore.SetAPIKey(key); err != nil {
			return fmt.Errorf("failed to save API key: %w", err)
		}

		fmt.Println("API key saved. Run 'tasktamer apikey validate' to verify it.")
		return nil
	},
}

var apikeyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the stored API key against the provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()

		credStore, err := GetCredentialStore()
		if err != nil {
			return fmt.Errorf("could not load credentials: %w", err)
		}
		creds := credStore.Credentials()
		if creds.APIKey == "" {
			return fmt.Errorf("no API key stored: run 'tasktamer apikey set' first")
		}

		client := openrouter.NewClient(creds.APIKey, time.Duration(config.OpenRouter.RequestTimeoutSeconds)*time.Second)
		if config.OpenRouter.BaseURL != "" {
			client = client.WithBaseURL(config.OpenRouter.BaseURL)
		}

		valid := client.ValidateAPIKey(cmd.Context())
		if err := credStore.MarkValidated(valid); err != nil {
			return fmt.Errorf("failed to record validation result: %w", err)
		}

		if valid {
			fmt.Println("API key is valid.")
			return nil
		}
		return fmt.Errorf("API key was rejected by OpenRouter")
	},
}

var apikeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored key's status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		credStore, err := GetCredentialStore()
		if err != nil {
			return fmt.Errorf("could not load credentials: %w", err)
		}
		creds := credStore.Credentials()
		if creds.APIKey == "" {
			fmt.Println("No API key stored.")
			return nil
		}

		fmt.Printf("API key: %s\n", maskKey(creds.APIKey))
		if creds.LastValidated != nil {
			status := "invalid"
			if creds.IsValid {
				status = "valid"
			}
			fmt.Printf("Last validated: %s (%s)\n", creds.LastValidated.Format(time.RFC3339), status)
		} else {
			fmt.Println("Never validated.")
		}
		return nil
	},
}

var apikeyModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available to the stored key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()

		credStore, err := GetCredentialStore()
		if err != nil {
			return fmt.Errorf("could not load credentials: %w", err)
		}
		creds := credStore.Credentials()
		if creds.APIKey == "" {
			return fmt.Errorf("no API key stored: run 'tasktamer apikey set' first")
		}

		client := openrouter.NewClient(creds.APIKey, time.Duration(config.OpenRouter.RequestTimeoutSeconds)*time.Second)
		if config.OpenRouter.BaseURL != "" {
			client = client.WithBaseURL(config.OpenRouter.BaseURL)
		}

		models, err := client.ListModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch models: %w", err)
		}

		for _, m := range models {
			fmt.Printf("%s\t%s\n", m.ID, m.Name)
		}
		return nil
	},
}

var apikeyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		credStore, err := GetCredentialStore()
		if err != nil {
			return fmt.Errorf("could not load credentials: %w", err)
		}
		if err := credStore.Clear(); err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}
		fmt.Println("API key removed.")
		return nil
	},
}

// maskKey keeps just enough of the key to recognize it.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

func init() {
	apikeyCmd.AddCommand(apikeySetCmd)
	apikeyCmd.AddCommand(apikeyValidateCmd)
	apikeyCmd.AddCommand(apikeyShowCmd)
	apikeyCmd.AddCommand(apikeyModelsCmd)
	apikeyCmd.AddCommand(apikeyClearCmd)
	rootCmd.AddCommand(apikeyCmd)
}
