package main

import (
	"github.com/joho/godotenv"
	"github.com/tcoelho/intelpost/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// API keys may live in a local .env during development.
	_ = godotenv.Load()

	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
