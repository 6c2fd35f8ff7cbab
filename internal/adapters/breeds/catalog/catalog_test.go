package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weijenchou/dogdietlinebot/internal/ports/breeds"
)

func TestLoadDefault_ResolvesNamesAndAliases(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)
	assert.Len(t, c.Names(), 24)

	ctx := context.Background()
	for _, q := range []string{"Shiba Inu", "shiba   inu", "SHIBA-INU", "柴犬"} {
		info, err := c.GetBreedInfo(ctx, q)
		require.NoError(t, err, q)
		assert.Equal(t, "Shiba Inu", info.Name)
		assert.NotEmpty(t, info.WhatToFeed)
	}

	_, err = c.GetBreedInfo(ctx, "dragon")
	assert.ErrorIs(t, err, breeds.ErrNotFound)
}

func TestLoad_RejectsDuplicateAlias(t *testing.T) {
	_, err := Load(strings.NewReader(`
[[breeds]]
name = "A"
aliases = ["x"]

[[breeds]]
name = "B"
aliases = ["X"]
`))
	assert.Error(t, err)
}

func TestLoad_RejectsMissingName(t *testing.T) {
	_, err := Load(strings.NewReader("[[breeds]]\nheight = \"1 m\"\n"))
	assert.Error(t, err)
}
