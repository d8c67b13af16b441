package parser

import (
	"time"

	"github.com/spf13/cast"
	"github.com/ukaji3/sheetfacts-go/pkg/sheetfacts/models"
)

// HeaderKeys converts a header row into record keys, in column order.
// Labels are not deduplicated.
func HeaderKeys(row []interface{}) []string {
	keys := make([]string, len(row))
	for i, v := range row {
		keys[i] = headerKey(v)
	}
	return keys
}

func headerKey(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return models.NullKey
	case time.Time:
		return t.Format(time.RFC3339)
	}
	return cast.ToString(v)
}

// BuildRecords turns the rows of a sheet into records. The first row is the
// header; every later row is zipped with it by position, so a short row
// leaves trailing keys out and a long row loses its extra cells.
func BuildRecords(rows [][]interface{}) []models.Record {
	if len(rows) == 0 {
		return []models.Record{}
	}

	header := HeaderKeys(rows[0])
	records := make([]models.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		n := min(len(header), len(row))
		record := models.NewRecord(n)
		for i := 0; i < n; i++ {
			record.Set(header[i], row[i])
		}
		records = append(records, record)
	}
	return records
}
