package main

import (
	"github.com/joho/godotenv"

	"schedassist/internal/cli"
)

func main() {
	// Optional .env for API keys and local overrides.
	_ = godotenv.Load()

	cli.Execute()
}
