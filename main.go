package main

import (
	"weight-tracker-backend/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local overrides (CONFIG_PATH etc.)
	_ = godotenv.Load()

	cmd.Run()
}
