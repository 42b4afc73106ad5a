package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/oggyb/whatsapp-notifier/internal/config"
	"github.com/oggyb/whatsapp-notifier/internal/events"
	"github.com/oggyb/whatsapp-notifier/internal/logger"
	"github.com/oggyb/whatsapp-notifier/internal/notification"
	"github.com/oggyb/whatsapp-notifier/internal/whatsapp"
)

// newCommand builds the one-shot sender. Extra client options are used by
// tests to swap the HTTP transport.
func newCommand(cfg *config.Config, out io.Writer, clientOpts ...whatsapp.Option) *cobra.Command {
	var (
		to       string
		text     string
		token    string
		instance string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send one WhatsApp message through HyperSender",
		Long: `Send one WhatsApp message directly, bypassing the outbox.

Examples:
  # Uses WHATSAPP_INSTANCE and WHATSAPP_TOKEN from the environment
  notify --to=905551234567 --text="Hello"

  # Override the token for this message only
  notify --to=905551234567@c.us --text="Hello" --token=other-token`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				return errors.New("--text is required")
			}
			if instance != "" {
				cfg.WhatsApp.Instance = instance
			}
			if cfg.WhatsApp.Instance == "" {
				return errors.New("no instance: set WHATSAPP_INSTANCE or --instance")
			}
			if cfg.WhatsApp.Token == "" && token == "" {
				return errors.New("no token: set WHATSAPP_TOKEN or --token")
			}

			log, err := logger.New(cfg.App.Env, cfg.App.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}

			opts := append([]whatsapp.Option{whatsapp.WithTimeout(timeout)}, clientOpts...)
			client := whatsapp.NewClient(cfg.WhatsApp.BaseURL, cfg.WhatsApp.Instance, cfg.WhatsApp.Token, opts...)

			bus := events.NewBus(log)
			bus.Listen(events.LogListener(log))

			channel, err := notification.NewWhatsappChannel(client, bus, notification.WithLogger(log))
			if err != nil {
				return err
			}

			msg := whatsapp.NewMessage(text).WithToken(token)
			n := notification.NotificationFunc(func(notification.Notifiable) whatsapp.Content { return msg })

			outcome, err := channel.Deliver(cmd.Context(), notification.Route(notification.ChannelName, whatsapp.FormatChatID(to)), n)
			if err != nil {
				return err
			}
			if outcome.Skipped != notification.SkipNone {
				return fmt.Errorf("message not sent: %s", outcome.Skipped)
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(outcome.Result)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "phone number or chat ID")
	cmd.Flags().StringVar(&text, "text", "", "message text")
	cmd.Flags().StringVar(&token, "token", "", "API token for this message (default WHATSAPP_TOKEN)")
	cmd.Flags().StringVar(&instance, "instance", "", "HyperSender instance (default WHATSAPP_INSTANCE)")
	cmd.Flags().DurationVar(&timeout, "timeout", cfg.WhatsApp.Timeout, "request timeout")

	return cmd
}
