package main

import (
	"os"

	"github.com/oggyb/whatsapp-notifier/internal/config"
)

func main() {
	cfg := config.New()

	if err := newCommand(cfg, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
