package testutils

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// GuildID returns a Discord-style snowflake.
func (g *TestDataGenerator) GuildID() sharedtypes.GuildID {
	return sharedtypes.GuildID(g.faker.Numerify("1#################"))
}

// PlayerIDs returns count distinct Discord-style snowflakes.
func (g *TestDataGenerator) PlayerIDs(count int) []sharedtypes.PlayerID {
	seen := make(map[sharedtypes.PlayerID]struct{}, count)
	out := make([]sharedtypes.PlayerID, 0, count)
	for len(out) < count {
		id := sharedtypes.PlayerID(g.faker.Numerify("2#################"))
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// RulesetName returns a short lowercase name.
func (g *TestDataGenerator) RulesetName() string {
	return g.faker.Noun() + "-" + g.faker.Numerify("###")
}
