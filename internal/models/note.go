package models

// StickyNote is a note pinned to the room canvas
type StickyNote struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Text   string  `json:"text"`
	Color  string  `json:"color"`
	Author string  `json:"author"`
}
