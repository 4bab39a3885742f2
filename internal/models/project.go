package models

// Project represents a TickTick project (a list grouping tasks).
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	Closed   bool   `json:"closed,omitempty"`
	GroupID  string `json:"groupId,omitempty"`
	ViewMode string `json:"viewMode,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// ProjectData is the project detail payload with its tasks embedded.
type ProjectData struct {
	Project Project `json:"project"`
	Tasks   []Task  `json:"tasks"`
}
