package shared

import (
	"os"
	"time"

	"github.com/DODOEX/b64huff/utils/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// initialize logger
func NewLogger(config *config.Conf) zerolog.Logger {
	zerolog.TimeFieldFormat = config.String("logger.time-format", time.RFC3339)

	// stdout 留给解码输出，日志统一写 stderr
	if config.Bool("logger.prettier", true) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = log.Output(os.Stderr)
	}

	l, err := zerolog.ParseLevel(config.String("logger.level", "info"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse log level")
	}
	zerolog.SetGlobalLevel(l)

	return log.Logger
}
