package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasktamer/tasktamer/openrouter"
)

// breakdownSystemPrompt steers the model toward small, concrete steps and
// a machine-parseable reply.
const breakdownSystemPrompt = `You are a task breakdown assistant for people with ADHD and procrastination issues. Break down the given task into 3-7 smaller, actionable subtasks. Each subtask should be specific and achievable in one sitting. Respond ONLY with a numbered list of subtasks, nothing else.`

// breakdownCmd asks the AI provider to split a task into subtasks and
// stores the suggestions.
var breakdownCmd = &cobra.Command{
	Use:     "breakdown <task_id> [context...]",
	Aliases: []string{"bd"},
	Short:   "Break a task into subtasks with AI assistance",
	Long: `Break a task into subtasks with AI assistance. The task's title and
description are sent to the configured OpenRouter model, and each
suggested step is added as a subtask. Requires an API key (see the
apikey command). The task is left untouched if the request fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()

		apiKey := config.OpenRouter.APIKey
		if apiKey == "" {
			credStore, err := GetCredentialStore()
			if err != nil {
				return fmt.Errorf("could not load credentials: %w", err)
			}
			apiKey = credStore.Credentials().APIKey
		}
		if apiKey == "" {
			return fmt.Errorf("no API key configured: run 'tasktamer apikey set' first")
		}

		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("could not initialize the task store: %w", err)
		}
		defer closeStore(taskStore)

		task, err := resolveTask(taskStore, args[0])
		if err != nil {
			return fmt.Errorf("could not find task '%s': %w", args[0], err)
		}

		client := openrouter.NewClient(apiKey, time.Duration(config.OpenRouter.RequestTimeoutSeconds)*time.Second)
		if config.OpenRouter.BaseURL != "" {
			client = client.WithBaseURL(config.OpenRouter.BaseURL)
		}

		userPrompt := task.Title
		if task.Description != "" {
			userPrompt = fmt.Sprintf("%s\n\n%s", task.Title, task.Description)
		}
		// Extra words after the task ID are passed along as context.
		if len(args) > 1 {
			userPrompt = fmt.Sprintf("%s\n\n%s", userPrompt, strings.Join(args[1:], " "))
		}

		fmt.Printf("Asking %s to break down '%s'...\n", config.OpenRouter.Model, task.Title)
		completion, err := client.CreateCompletion(cmd.Context(), openrouter.CompletionRequest{
			Model: config.OpenRouter.Model,
			Messages: []openrouter.Message{
				{Role: "system", Content: breakdownSystemPrompt},
				{Role: "user", Content: userPrompt},
			},
			Temperature: config.OpenRouter.Temperature,
			MaxTokens:   config.OpenRouter.MaxTokens,
		})
		if err != nil {
			return fmt.Errorf("breakdown request failed: %w", err)
		}

		suggestions := openrouter.ParseNumberedList(completion.Choices[0].Message.Content)
		if len(suggestions) == 0 {
			return fmt.Errorf("the model's reply contained no usable subtasks; try again")
		}

		for _, title := range suggestions {
			if _, err := taskStore.AddSubtask(task.ID, title, ""); err != nil {
				return fmt.Errorf("failed to save suggested subtask '%s': %w", title, err)
			}
		}

		fmt.Printf("Added %d subtasks to '%s':\n", len(suggestions), task.Title)
		for i, title := range suggestions {
			fmt.Printf("  %d. %s\n", i+1, title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(breakdownCmd)
}
