package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oggyb/whatsapp-notifier/internal/config"
	"github.com/oggyb/whatsapp-notifier/internal/db/gormdb"
	"github.com/oggyb/whatsapp-notifier/internal/domain/delivery"
	"github.com/oggyb/whatsapp-notifier/internal/logger"
	deliveryRepo "github.com/oggyb/whatsapp-notifier/internal/repository/gorm/delivery"
	"github.com/oggyb/whatsapp-notifier/internal/whatsapp"
)

func main() {
	var count int

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Insert random pending WhatsApp deliveries into the outbox",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(cmd.Context(), config.New(), count)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 50, "number of pending deliveries to insert")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func seed(ctx context.Context, cfg *config.Config, count int) error {
	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log = logger.Component(log, "seed")

	db, err := gormdb.New(cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	log.Info().Str("db", cfg.DB.Name).Msg("connected to database")

	repo := deliveryRepo.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	for i := 1; i <= count; i++ {
		d, err := delivery.NewDelivery(whatsapp.FormatChatID(randomPhone()), randomContent(i))
		if err != nil {
			return fmt.Errorf("seed delivery #%d: %w", i, err)
		}
		if err := repo.Save(ctx, d); err != nil {
			return fmt.Errorf("save delivery #%d: %w", i, err)
		}
		log.Debug().Str("id", d.ID.String()).Str("chat_id", d.ChatID).Msg("created delivery")
	}

	log.Info().Int("count", count).Msg("seeding done")
	return nil
}

// randomPhone returns a fake Turkish mobile number, e.g. 905123456789.
func randomPhone() string {
	return fmt.Sprintf("905%d", rand.Intn(900000000)+100000000)
}

func randomContent(i int) string {
	return fmt.Sprintf("Seed notification #%d queued at %s", i, time.Now().Format("15:04:05"))
}
