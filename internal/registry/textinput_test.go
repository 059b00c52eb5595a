package registry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildTextWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLoadTextInputsFreeTextOnly(t *testing.T) {
	texts := LoadTextInputs(nil, "hi")
	assert.Equal(t, map[string]string{"custom": "hi"}, texts)
}

func TestLoadTextInputsTableOnly(t *testing.T) {
	buf := buildTextWorkbook(t, [][]interface{}{
		{"Text", "File_name"},
		{"Hello there", "greeting1"},
		{"", "skipped_empty_text"},
		{"skipped empty name", ""},
		{"Welcome!", "welcome1"},
	})

	texts := LoadTextInputs(buf, "")
	assert.Equal(t, map[string]string{
		"greeting1": "Hello there",
		"welcome1":  "Welcome!",
	}, texts)
}

func TestLoadTextInputsMerge(t *testing.T) {
	buf := buildTextWorkbook(t, [][]interface{}{
		{"Text", "File_name"},
		{"table wins nothing", "custom"},
		{"Hello", "greeting1"},
	})

	// custom 保留键始终取自由文本
	texts := LoadTextInputs(buf, "free text wins")
	assert.Equal(t, "free text wins", texts["custom"])
	assert.Equal(t, "Hello", texts["greeting1"])
	assert.Len(t, texts, 2)
}

func TestTextTemplate(t *testing.T) {
	buf, err := TextTemplate()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Text", "File_name"}, rows[0])
}
