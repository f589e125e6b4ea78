package main

import (
	"os"

	"github.com/avstrong/homestay/internal/app"
	"github.com/avstrong/homestay/internal/logger"
)

func main() {
	l := logger.New(logger.Conf{Out: os.Stderr, Level: os.Getenv("HOMESTAY_LOG_LEVEL")})

	var exitCode int

	if err := app.Run(l); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	os.Exit(exitCode)
}
