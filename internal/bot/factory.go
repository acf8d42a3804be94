package bot

import (
	"fmt"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelPassive:
		return &PassiveBot{}, nil
	case BotLevelStandard, "":
		return &StandardBot{Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %s", level)
	}
}
