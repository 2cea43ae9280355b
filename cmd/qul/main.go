package main

import (
	"github.com/joho/godotenv"

	"github.com/tarteel-labs/qul-indexer/internal/adapters/driving/cli"
)

func main() {
	// A .env file is optional; credentials may come from the config
	// file or the environment directly.
	_ = godotenv.Load()

	cli.Execute()
}
