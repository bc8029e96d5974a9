package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taskory-assistant/internal/agent"
	"taskory-assistant/internal/chat"
	"taskory-assistant/internal/config"
	"taskory-assistant/internal/fuzzy"
	"taskory-assistant/internal/history"
	"taskory-assistant/internal/llm"
	"taskory-assistant/internal/resolve"
	"taskory-assistant/internal/task"
)

var (
	verbose bool
	model   string
	userID  string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "taskory",
	Short: "Taskory Assistant - conversational task management",
	Long: `Taskory Assistant manages your task list through natural conversation.

Messages in English, Urdu, or Roman Urdu are turned into task operations
(add, list, update, complete, delete, search) via a local Ollama model.

Run without arguments to start the interactive chat.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

// sendCmd processes a single message and exits. Handy for scripting.
var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Send one message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := buildService()
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := svc.Send(cmd.Context(), resolveUserID(), "", strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(res.Response)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "override the chat model (default from TASKORY_MODEL)")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "override the user id (default from TASKORY_USER)")
	rootCmd.AddCommand(sendCmd)
}

func resolveUserID() string {
	if userID != "" {
		return userID
	}
	return config.Load().UserID
}

// buildService assembles the full pipeline: config, task store, resolver,
// conversation store, completion client, agent, chat service.
func buildService() (*chat.Service, func(), error) {
	cfg := config.Load()
	if model != "" {
		cfg.Model = model
	}

	logger.Debug("configuration loaded",
		zap.String("host", cfg.OllamaHost),
		zap.String("model", cfg.Model),
		zap.String("db", cfg.DBPath),
		zap.Bool("fuzzy_disabled", cfg.DisableFuzzy))

	matcher := fuzzy.NewMatcher(!cfg.DisableFuzzy)
	resolver := resolve.New(matcher, logger)
	svc := task.NewMemoryService()

	store, err := history.NewSQLiteStore(cfg.DBPath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("conversation store: %w", err)
	}

	client, err := llm.NewOllama(cfg.Model, logger)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("completion client: %w", err)
	}

	a := agent.New(client, svc, resolver, logger)
	cleanup := func() { _ = store.Close() }
	return chat.New(store, a, logger), cleanup, nil
}

func runChat(ctx context.Context) error {
	svc, cleanup, err := buildService()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	uid := resolveUserID()
	fmt.Println("Taskory Assistant. Type a message, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	conversationID := ""
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		res, err := svc.Send(ctx, uid, conversationID, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		conversationID = res.ConversationID
		fmt.Println(res.Response)

		if ctx.Err() != nil {
			break
		}
	}
	return scanner.Err()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
