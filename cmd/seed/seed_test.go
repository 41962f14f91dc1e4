package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qcommerce-agent/internal/infrastructure/dataset"
)

func TestRootCommand_Subcomandos(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["generate"])
	assert.True(t, names["load"])
}

func TestGenerate_EscribeCSVLegibles(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := runGenerate(&out, &generateOptions{days: 5, seed: 7, out: dir, xlsx: true}, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "sales_data.csv")

	ds, err := dataset.LoadCSV(filepath.Join(dir, "sales_data.csv"), filepath.Join(dir, "inventory_data.csv"), dataset.Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, ds.Sales)
	assert.NotEmpty(t, ds.Inventory)

	_, err = os.Stat(filepath.Join(dir, "dataset.xlsx"))
	assert.NoError(t, err)
}

func TestGenerate_DiasInvalidos(t *testing.T) {
	err := runGenerate(&bytes.Buffer{}, &generateOptions{days: 0, out: t.TempDir()}, time.Now())
	assert.Error(t, err)
}

func TestLoad_CSVInexistente(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"load", "--sales", filepath.Join(t.TempDir(), "nope.csv")})
	err := root.Execute()
	assert.ErrorContains(t, err, "leer dataset")
}
