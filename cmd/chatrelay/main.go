package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatrelay/internal/chatwork"
	"chatrelay/internal/config"
	"chatrelay/internal/relay"
	"chatrelay/internal/server"
	"chatrelay/internal/slack"

	"github.com/spf13/cobra"
)

var (
	version    = "0.2.0"
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:   "chatrelay",
		Short: "chatrelay: webhook relay between chat platforms",
		Long:  "chatrelay receives chat-platform webhooks, resolves sender identities, and forwards messages to a destination workspace webhook.",
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.json (optional; environment variables override)")

	root.AddCommand(serveCmd())
	root.AddCommand(doctorCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook relay server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.SlogLevel(cfg.Logging.Level),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules, err := relay.LoadSuppressRules(cfg.Relay.SuppressRulesFile)
	if err != nil {
		return err
	}

	httpClient := relay.SharedHTTPClient(time.Duration(cfg.Relay.OutboundTimeoutSeconds) * time.Second)
	forwarder := relay.NewForwarder(cfg.Relay.DestinationWebhookURL, httpClient, logger)

	slackHandler := slack.NewHandler(slack.HandlerConfig{
		SigningSecrets: cfg.Slack.SigningSecrets,
		Directory: slack.NewDirectory(slack.DirectoryConfig{
			BotToken:   cfg.Slack.BotToken,
			HTTPClient: httpClient,
			Logger:     logger,
		}),
		Suppressor: relay.NewSuppressor(
			append(cfg.Slack.SuppressSenderRefs, rules.Slack.SenderRefs...),
			append(cfg.Slack.SuppressNameSubstrings, rules.Slack.NameSubstrings...),
		),
		Forwarder: forwarder,
		Logger:    logger,
	})

	chatworkHandler := chatwork.NewHandler(chatwork.HandlerConfig{
		WebhookTokens: cfg.Chatwork.WebhookTokens,
		Directory: chatwork.NewClient(chatwork.ClientConfig{
			APIToken:   cfg.Chatwork.APIToken,
			HTTPClient: httpClient,
			Logger:     logger,
		}),
		Suppressor: relay.NewSuppressor(
			append(cfg.Chatwork.SuppressSenderRefs, rules.Chatwork.SenderRefs...),
			append(cfg.Chatwork.SuppressNameSubstrings, rules.Chatwork.NameSubstrings...),
		),
		Forwarder: forwarder,
		Logger:    logger,
	})

	srv := server.New(server.Config{
		Host:   cfg.Server.Host,
		Port:   cfg.Server.Port,
		Logger: logger,
	}, slackHandler, chatworkHandler)

	logger.Info("chatrelay starting", "version", version)
	return srv.Start(ctx)
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check which required settings are present",
		Long:  "Reports the presence of required configuration without printing secret values.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			report := []struct {
				name string
				ok   bool
			}{
				{"relay.destinationWebhookUrl", cfg.Relay.DestinationWebhookURL != ""},
				{"slack.botToken", cfg.Slack.BotToken != ""},
				{"slack.signingSecrets", len(cfg.Slack.SigningSecrets) > 0},
				{"chatwork.apiToken", cfg.Chatwork.APIToken != ""},
				{"chatwork.webhookTokens", len(cfg.Chatwork.WebhookTokens) > 0},
			}

			allOK := true
			for _, item := range report {
				mark := "ok"
				if !item.ok {
					mark = "MISSING"
					allOK = false
				}
				fmt.Printf("%-32s %s\n", item.name, mark)
			}
			if !allOK {
				fmt.Println("\nsome settings are missing; affected requests will fail with a server error")
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("chatrelay " + version)
		},
	}
}
