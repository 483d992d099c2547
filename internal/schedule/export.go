package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExportFilename is the download name for an exported schedule.
const ExportFilename = "horario.json"

// ExportJSON encodes activities as the horario.json document: an indented
// array of {day,title,start,end,location,note} objects with "HH:MM" times.
// HTML escaping is disabled so accented text survives unescaped.
func ExportJSON(acts []Activity) ([]byte, error) {
	if acts == nil {
		acts = []Activity{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(acts); err != nil {
		return nil, fmt.Errorf("encode schedule: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportJSON reconstructs activities from an exported document, preserving
// order and values exactly. Every entry is re-validated the way Add
// validates, so a tampered document cannot smuggle in an inverted range.
func ImportJSON(data []byte) ([]Activity, error) {
	var acts []Activity
	if err := json.Unmarshal(data, &acts); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	for i, a := range acts {
		if !ValidDay(a.Day) {
			return nil, fmt.Errorf("activity %d (%q): %w", i, a.Day, ErrUnknownDay)
		}
		if !a.End.After(a.Start) {
			return nil, fmt.Errorf("activity %d: %w", i, ErrInvalidRange)
		}
	}
	return acts, nil
}
