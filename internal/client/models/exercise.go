package models

// Exercise is one exercise record as served by the API.
type Exercise struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Series      int    `json:"series"`
	Repetitions int    `json:"repetitions"`
	Group       string `json:"group"`
	Demo        string `json:"demo"`
	Thumb       string `json:"thumb"`
}

// HistoryEntry is a single completed exercise in the user's history.
type HistoryEntry struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	Hour      string `json:"hour"`
	CreatedAt string `json:"created_at"`
}

// HistoryDay groups history entries under one date title, mirroring the
// sectioned shape the API returns.
type HistoryDay struct {
	Title string         `json:"title"`
	Data  []HistoryEntry `json:"data"`
}
