// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/trademark-engine/internal/search"
	"github.com/pdiddy/trademark-engine/internal/store"
	"github.com/pdiddy/trademark-engine/pkg/types"
)

// useConfig points the package-level config at a store under a temp dir and
// restores the previous config when the test ends.
func useConfig(t *testing.T) string {
	t.Helper()
	prevCfg, prevLog := cfg, log
	t.Cleanup(func() { cfg, log = prevCfg, prevLog })

	dir := filepath.Join(t.TempDir(), "data")
	cfg = types.Config{
		Store: types.StoreConfig{Path: filepath.Join(dir, "trademarks.db")},
	}
	log = zaptest.NewLogger(t)
	return dir
}

// --- search ---

func TestSearchInvalidQueryHasNoSideEffects(t *testing.T) {
	dir := useConfig(t)

	err := runSearch(searchCmd, []string{"   "})
	assert.ErrorIs(t, err, search.ErrInvalidQuery)
	assert.NoDirExists(t, dir, "an invalid query must not create the store")
}

// --- store delete ---

func TestStoreDelete(t *testing.T) {
	useConfig(t)

	st, err := store.NewStore(cfg.Store)
	require.NoError(t, err)
	_, err = st.Upsert(context.Background(), []types.TrademarkRecord{
		{ID: "gr-1", Name: "ACME", Jurisdiction: "GR"},
		{ID: "gr-2", Name: "ZEBRA", Jurisdiction: "GR"},
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	storeDeleteCmd.SetContext(context.Background())
	err = runStoreDelete(storeDeleteCmd, []string{"gr-1", "missing"})
	assert.ErrorContains(t, err, "1 record(s) could not be deleted")

	st, err = store.NewStore(cfg.Store)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.Get(context.Background(), "gr-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Get(context.Background(), "gr-2")
	assert.NoError(t, err)
}
