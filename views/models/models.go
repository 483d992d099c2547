package models

// ChipView is the visual unit for one activity inside a grid cell.
type ChipView struct {
	Title     string `json:"title"`
	TimeRange string `json:"timeRange"`
	Subtitle  string `json:"subtitle,omitempty"`
	Color     string `json:"color"`
	NoteHTML  string `json:"noteHtml,omitempty"`
}

// CellView is one (hour, day) cell with its overlapping activities.
type CellView struct {
	Day   string     `json:"day"`
	Chips []ChipView `json:"chips"`
}

// RowView is one hourly row of the grid.
type RowView struct {
	Hour  int        `json:"hour"`
	Label string     `json:"label"`
	Cells []CellView `json:"cells"`
}

// GridView is the derived day-by-hour view of a schedule. It is recomputed
// on every render and never cached.
type GridView struct {
	Days []string  `json:"days"`
	Rows []RowView `json:"rows"`
}
