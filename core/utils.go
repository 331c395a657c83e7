package core

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// GetSeed resolves the seed for pivot selection during tree construction.
//
// Precedence: an explicit seed always wins; otherwise the BALLTREE_SEED
// environment variable is consulted; absent both, the current time seeds
// the build.
func GetSeed(explicit *int64) int64 {
	if explicit != nil {
		return *explicit
	}

	seedStr := os.Getenv("BALLTREE_SEED")
	if seedStr != "" {
		if seed, err := strconv.ParseInt(seedStr, 10, 64); err == nil {
			log.Info().Msgf("using seed from BALLTREE_SEED value: %d", seed)
			return seed
		}
		log.Warn().Msgf("failed to parse BALLTREE_SEED value: %s", seedStr)
	}

	seed := time.Now().UnixNano()
	log.Info().Msgf("using current time as seed: %d", seed)
	return seed
}
