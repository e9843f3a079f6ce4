package diagfmt

import (
	"encoding/json"
	"io"

	"frtypo/internal/diag"
	"frtypo/internal/source"
)

// LocationJSON представляет местоположение записи
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Line      uint32 `json:"line,omitempty"`
	Col       uint32 `json:"col,omitempty"`
}

// RecordJSON is one record in JSON output.
type RecordJSON struct {
	Severity string       `json:"severity"`
	Category string       `json:"category"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Before   string       `json:"before,omitempty"`
	After    string       `json:"after,omitempty"`
}

// RecordsOutput is the root of JSON output.
type RecordsOutput struct {
	Records []RecordJSON `json:"records"`
	Count   int          `json:"count"`
}

// BuildRecordsOutput формирует структуру JSON-вывода без сериализации.
func BuildRecordsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) RecordsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}

	records := make([]RecordJSON, 0, n)
	for _, rec := range items[:n] {
		records = append(records, RecordJSON{
			Severity: rec.Severity.String(),
			Category: rec.Code.ID(),
			Message:  rec.Message,
			Location: LocationJSON{
				File:      pathOf(fs, rec, opts.PathMode),
				StartByte: rec.Primary.Start,
				EndByte:   rec.Primary.End,
				Line:      rec.Pos.Line,
				Col:       rec.Pos.Col,
			},
			Before: rec.Before,
			After:  rec.After,
		})
	}
	return RecordsOutput{Records: records, Count: len(records)}
}

// JSON writes the records as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(BuildRecordsOutput(bag, fs, opts))
}
