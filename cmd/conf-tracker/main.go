package main

import (
	"github.com/joho/godotenv"
	"github.com/pfrederiksen/conf-tracker/internal/cli"
)

func main() {
	// Best effort: a missing .env just means the environment is already set
	_ = godotenv.Load()

	cli.Execute()
}
