package schedule

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"horario/views/models"
)

// Service owns one session's store and everything derived from it.
type Service struct {
	store *Store
	md    goldmark.Markdown
}

func NewService(store *Store) *Service {
	return &Service{
		store: store,
		md:    goldmark.New(),
	}
}

// Add validates raw input and appends the activity. Day membership and
// time syntax are input-layer checks; the store itself only enforces that
// the activity ends after it starts.
func (s *Service) Add(input AddInput) (Activity, error) {
	day := strings.TrimSpace(input.Day)
	if !ValidDay(day) {
		return Activity{}, fmt.Errorf("day %q: %w", input.Day, ErrUnknownDay)
	}

	start, err := ParseTimeOfDay(strings.TrimSpace(input.Start))
	if err != nil {
		return Activity{}, fmt.Errorf("start: %w", err)
	}
	end, err := ParseTimeOfDay(strings.TrimSpace(input.End))
	if err != nil {
		return Activity{}, fmt.Errorf("end: %w", err)
	}

	a := Activity{
		Day:      day,
		Title:    strings.TrimSpace(input.Title),
		Start:    start,
		End:      end,
		Location: strings.TrimSpace(input.Location),
		Note:     strings.TrimSpace(input.Note),
	}
	if err := s.store.Add(a); err != nil {
		return Activity{}, err
	}
	return a, nil
}

// List returns the session's activities in insertion order.
func (s *Service) List() []Activity {
	return s.store.List()
}

// Clear empties the schedule.
func (s *Service) Clear() {
	s.store.Clear()
}

// Grid derives the day-by-hour view for the given hour range.
func (s *Service) Grid(startHour, endHour int) models.GridView {
	return BuildGrid(s.store.List(), startHour, endHour, s.RenderNote)
}

// Export serializes the schedule as the horario.json document.
func (s *Service) Export() ([]byte, error) {
	return ExportJSON(s.store.List())
}

// Import replaces the schedule from an exported document.
func (s *Service) Import(data []byte) error {
	acts, err := ImportJSON(data)
	if err != nil {
		return err
	}
	return s.store.Replace(acts)
}

// RenderNote converts a markdown note to HTML.
func (s *Service) RenderNote(note string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(note), &buf); err != nil {
		return note // Return raw content on error
	}
	return buf.String()
}
