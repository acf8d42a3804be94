package domain

import (
	"strings"
	"testing"
)

// cards parses space-separated card codes for fixtures.
func cards(codes string) []Card {
	fields := strings.Fields(codes)
	out := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

func TestCardsFixtureRejectsBadCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for malformed code")
		}
	}()
	cards("2H ZZ")
}
