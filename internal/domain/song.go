package domain

// Song is an immutable catalog record.
type Song struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ImageURL    string `json:"imageUrl"`
	AudioURL    string `json:"url"`
	Description string `json:"description"`
}
