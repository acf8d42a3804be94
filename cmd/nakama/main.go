// Command nakama builds the bridge room plugin loaded by the Nakama server. The room RPCs and
// stores live in internal/ports/nakama.
package main

import (
	"context"
	"database/sql"

	"bridgeroom/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule is the symbol Nakama looks up in the plugin; it registers the bridge room RPCs.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}
