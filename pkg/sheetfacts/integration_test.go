package sheetfacts

import (
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetfacts-go/pkg/sheetfacts/parser"
	"github.com/xuri/excelize/v2"
)

type sheetSpec struct {
	name string
	rows [][]interface{}
}

func writeWorkbook(t *testing.T, sheets ...sheetSpec) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet.name))
		} else {
			_, err := f.NewSheet(sheet.name)
			require.NoError(t, err)
		}
		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := row
			require.NoError(t, f.SetSheetRow(sheet.name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func newExcelizeExtractor(t *testing.T) *Extractor {
	t.Helper()
	ex, err := NewExtractor(NewExcelizeReader(parser.ReadOptions{}), zerolog.Nop())
	require.NoError(t, err)
	return ex
}

func testWorkbook(t *testing.T) string {
	return writeWorkbook(t,
		sheetSpec{name: "Data", rows: [][]interface{}{
			{"A", "B", "C"},
			{1, 2, 3},
			{1, 2},
		}},
		sheetSpec{name: "Wide", rows: [][]interface{}{
			{"A", "B"},
			{1, 2, 3},
		}},
		sheetSpec{name: "HeaderOnly", rows: [][]interface{}{
			{"A", "B"},
		}},
	)
}

func TestExtractWorkbook(t *testing.T) {
	ex := newExcelizeExtractor(t)

	facts, err := ex.Extract(testWorkbook(t), DefaultOptions())
	require.NoError(t, err)

	rs := facts.AnsibleFacts
	assert.Equal(t, []string{"sheet_Data", "sheet_Wide", "sheet_HeaderOnly"}, rs.Keys())

	data, _ := rs.Get("sheet_Data")
	require.Len(t, data, 2)
	assert.Equal(t, map[string]interface{}{"A": int64(1), "B": int64(2), "C": int64(3)}, data[0].ToMap())
	assert.Equal(t, map[string]interface{}{"A": int64(1), "B": int64(2)}, data[1].ToMap())

	wide, _ := rs.Get("sheet_Wide")
	require.Len(t, wide, 1)
	assert.Equal(t, map[string]interface{}{"A": int64(1), "B": int64(2)}, wide[0].ToMap())

	headerOnly, ok := rs.Get("sheet_HeaderOnly")
	assert.True(t, ok)
	assert.Empty(t, headerOnly)
}

func TestExtractWorkbookFiltered(t *testing.T) {
	ex := newExcelizeExtractor(t)

	facts, err := ex.Extract(testWorkbook(t), Options{Sheets: []string{"HeaderOnly", "Data"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"sheet_HeaderOnly", "sheet_Data"}, facts.AnsibleFacts.Keys())

	_, err = ex.Extract(testWorkbook(t), Options{Sheets: []string{"data"}})
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestExtractWorkbookIdempotent(t *testing.T) {
	ex := newExcelizeExtractor(t)
	path := testWorkbook(t)

	first, err := ex.Extract(path, DefaultOptions())
	require.NoError(t, err)
	second, err := ex.Extract(path, DefaultOptions())
	require.NoError(t, err)

	a, err := jsoniter.Marshal(first)
	require.NoError(t, err)
	b, err := jsoniter.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t,
		`{"ansible_facts":{"sheet_Data":[{"A":1,"B":2,"C":3},{"A":1,"B":2}],"sheet_Wide":[{"A":1,"B":2}],"sheet_HeaderOnly":[]}}`,
		string(a))
}

func TestRunMissingFile(t *testing.T) {
	ex := newExcelizeExtractor(t)
	path := filepath.Join(t.TempDir(), "missing.xlsx")

	res := ex.Run(path, DefaultOptions())
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, KindInputUnavailable, res.Kind)
	assert.Equal(t, "IOError on input file: "+path, res.Message)
	assert.Nil(t, res.Facts)
}

func TestRunInvalidFile(t *testing.T) {
	ex := newExcelizeExtractor(t)
	path := filepath.Join(t.TempDir(), "invalid.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("name,ip\nweb01,10.0.0.1\n"), 0644))

	res := ex.Run(path, DefaultOptions())
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, KindInputUnavailable, res.Kind)
	assert.Contains(t, res.Message, path)
}
