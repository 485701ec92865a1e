package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name   string
		arg    string
		region string
		player string
		ok     bool
	}{
		{"region and player", "na1:Faker", "na1", "Faker", true},
		{"uppercase region", "EUW1:Caps", "euw1", "Caps", true},
		{"player only", "Faker", "", "Faker", true},
		{"player with spaces", "kr:Hide on bush", "kr", "Hide on bush", true},
		{"unknown region", "moon1:Faker", "", "", false},
		{"missing player", "na1:", "", "", false},
		{"missing region", ":Faker", "", "", false},
		{"empty", "  ", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, player, err := parseTarget(tt.arg)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.region, region)
			assert.Equal(t, tt.player, player)
		})
	}
}

func TestDefaultDestination(t *testing.T) {
	assert.Equal(t, "Faker.jsonl", defaultDestination("file", "Faker"))
	assert.Equal(t, "Faker.db", defaultDestination("sqlite", "Faker"))
	assert.Equal(t, "riotscraper:Faker", defaultDestination("redis", "Faker"))
	assert.Equal(t, "Hide_on_bush.jsonl", defaultDestination("file", "Hide on bush"))
}
