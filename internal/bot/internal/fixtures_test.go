package internal

import (
	"strings"

	"bridgeroom/internal/domain"
)

// cards parses space-separated card codes for fixtures.
func cards(codes string) []domain.Card {
	fields := strings.Fields(codes)
	out := make([]domain.Card, 0, len(fields))
	for _, f := range fields {
		c, err := domain.ParseCard(f)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}
