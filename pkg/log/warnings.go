package log

import (
	"os"

	"github.com/rs/zerolog"

	"regsweep/pkg/errors"
)

// UseZerologWarnings routes warnings raised during fitting (convergence,
// derivation) through a zerolog console writer. Warning types in pkg/errors
// implement zerolog.LogObjectMarshaler, so their structured context is
// preserved instead of being flattened into the message.
func UseZerologWarnings() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	errors.SetZerologWarnFunc(func(w error) {
		if obj, ok := w.(zerolog.LogObjectMarshaler); ok {
			logger.Warn().EmbedObject(obj).Msg(w.Error())
			return
		}
		logger.Warn().Err(w).Msg("warning")
	})
}
