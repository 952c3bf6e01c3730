package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesCSV = "Tip,Isim,SKT,OCAK,ŞUBAT,HAZİRAN\n" +
	"Ürün,Elma Suyu,01.01.2020,500,300,150\n" +
	"Ürün,Ayran,01.08.2024,10,10,30\n" +
	"Marka,Kola,,100,100,100\n"

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "satis.csv")
	require.NoError(t, os.WriteFile(path, []byte(salesCSV), 0o644))
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	require.NoError(t, app.Run(append([]string{"salesctl"}, args...)))
	return out.String()
}

func TestLoadCommand(t *testing.T) {
	out := run(t, "--file", writeExport(t), "--json", "load")

	var st map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, "ok", st["status"])
	assert.Equal(t, "file", st["source"])
	counts := st["counts"].(map[string]interface{})
	assert.EqualValues(t, 2, counts["product"])
	assert.EqualValues(t, 1, counts["brand"])
}

func TestGroupsCommand(t *testing.T) {
	out := run(t, "--file", writeExport(t), "groups", "--type", "urun")
	assert.Contains(t, out, "Elma Suyu")
	assert.Contains(t, out, "Ayran")
	assert.NotContains(t, out, "Kola")
	assert.Contains(t, out, "1.000")
}

func TestGroupsCommandUnknownType(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"salesctl", "--file", writeExport(t), "groups", "--type", "bilinmeyen"})
	assert.Error(t, err)
}

func TestSalesCommand(t *testing.T) {
	out := run(t, "--file", writeExport(t), "--json", "sales", "--period", "1yil")

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Elma Suyu", entries[0]["name"])
	assert.EqualValues(t, 950, entries[0]["sales"])
}

func TestSalesCommandUnknownPeriod(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"salesctl", "--file", writeExport(t), "sales", "--period", "2yil"})
	assert.Error(t, err)
}

func TestCommonFlagsAfterCommand(t *testing.T) {
	path := writeExport(t)

	out := run(t, "expiry", "--json", "--file", path)
	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	overdue := report["overdue"].(map[string]interface{})
	assert.EqualValues(t, 950, overdue["total_units"])

	out = run(t, "levels", "--period", "1yil", "--file", path, "--json")
	var levels []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &levels))
	require.Len(t, levels, 2)
	assert.Equal(t, "Elma Suyu", levels[0]["name"])
}

func TestCommandFlagOverridesAppFlag(t *testing.T) {
	other := filepath.Join(t.TempDir(), "bos.csv")
	require.NoError(t, os.WriteFile(other, []byte("Tip,Isim,OCAK\nMarka,Kola,5\n"), 0o644))

	out := run(t, "--file", other, "--json", "load", "--file", writeExport(t))
	var st map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	counts := st["counts"].(map[string]interface{})
	assert.EqualValues(t, 2, counts["product"])
}
