package schedule

import (
	"crypto/md5"
	"fmt"

	"horario/views/models"
)

// Overlaps reports whether the activity touches the hour block
// [hour:00, hour+1:00). The interval test is half-open on both sides: an
// activity ending exactly on the hour does not occupy that hour's row,
// one starting exactly on the hour does.
func Overlaps(hour int, a Activity) bool {
	blockStart := hour * 60
	blockEnd := blockStart + 60
	return a.Start.Minutes() < blockEnd && a.End.Minutes() > blockStart
}

// ColorFor maps text to a deterministic pastel hex color. The same title
// always gets the same color, within and across sessions, so activities
// group visually without an explicit color table.
func ColorFor(text string) string {
	sum := md5.Sum([]byte(text))
	r := (int(sum[0]) + 200) / 2
	g := (int(sum[1]) + 200) / 2
	b := (int(sum[2]) + 200) / 2
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// BuildGrid derives the day-by-hour view for acts over the half-open hour
// range [startHour, endHour). Within a cell, chips keep the activities'
// insertion order. An empty hour range yields a grid with no rows.
//
// renderNote, when non-nil, converts a raw note to HTML for chip detail;
// pass nil to skip. BuildGrid never mutates the store's activities.
func BuildGrid(acts []Activity, startHour, endHour int, renderNote func(string) string) models.GridView {
	byDay := make(map[string][]Activity, len(Days))
	for _, a := range acts {
		byDay[a.Day] = append(byDay[a.Day], a)
	}

	grid := models.GridView{Days: Days, Rows: []models.RowView{}}
	for hour := startHour; hour < endHour; hour++ {
		row := models.RowView{
			Hour:  hour,
			Label: fmt.Sprintf("%02d:00", hour),
			Cells: make([]models.CellView, 0, len(Days)),
		}
		for _, day := range Days {
			cell := models.CellView{Day: day, Chips: []models.ChipView{}}
			for _, a := range byDay[day] {
				if !Overlaps(hour, a) {
					continue
				}
				cell.Chips = append(cell.Chips, newChip(a, renderNote))
			}
			row.Cells = append(row.Cells, cell)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

func newChip(a Activity, renderNote func(string) string) models.ChipView {
	colorText := a.Title
	if colorText == "" {
		// Sentinel keeps color assignment deterministic for blank titles.
		colorText = "x"
	}

	subtitle := a.Location
	if subtitle == "" {
		subtitle = a.Note
	}

	chip := models.ChipView{
		Title:     a.Title,
		TimeRange: fmt.Sprintf("%s–%s", a.Start, a.End),
		Subtitle:  subtitle,
		Color:     ColorFor(colorText),
	}
	if a.Note != "" && renderNote != nil {
		chip.NoteHTML = renderNote(a.Note)
	}
	return chip
}
