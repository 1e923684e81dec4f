package models

// Profile is the portfolio owner's public card
type Profile struct {
	Name     string `json:"name" toml:"name"`
	Title    string `json:"title" toml:"title"`
	Bio      string `json:"bio" toml:"bio"`
	Location string `json:"location,omitempty" toml:"location"`
	GitHub   string `json:"github" toml:"github"`
	LinkedIn string `json:"linkedin" toml:"linkedin"`
}

// Project is a showcased piece of work
type Project struct {
	ID          int      `json:"id" toml:"id"`
	Title       string   `json:"title" toml:"title"`
	Description string   `json:"description" toml:"description"`
	Tags        []string `json:"tags" toml:"tags"`
	GitHubURL   string   `json:"github_url" toml:"github_url"`
}

// Skill is one entry of a skill category
type Skill struct {
	Name  string `json:"name" toml:"name"`
	Level int    `json:"level" toml:"level"` // 0-100
}

// BlogPost is a short article teaser
type BlogPost struct {
	ID      int      `json:"id" toml:"id"`
	Title   string   `json:"title" toml:"title"`
	Summary string   `json:"summary" toml:"summary"`
	Date    string   `json:"date" toml:"date"` // YYYY-MM-DD
	Tags    []string `json:"tags" toml:"tags"`
}

// TerminalResponse is returned by the terminal simulator
type TerminalResponse struct {
	Output  string `json:"output"`
	Success bool   `json:"success"`
}

// ErrorResponse is the 200-shaped not-found body used across the API
type ErrorResponse struct {
	Error string `json:"error"`
}
