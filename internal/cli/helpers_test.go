package cli

import (
	"github.com/aretw0/stepwise/internal/logging"
	"log/slog"
)

func slogDiscard() *slog.Logger { return logging.NewNop() }
