// Command catalogctl renders the feeds and the duplicate report locally,
// with the same fetch strategies the functions use.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using system environment variables")
	}

	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
