package oengus

// Category is one run configuration inside a submission. Identity is ID,
// assigned by Oengus. Estimate is an ISO-8601-ish duration string.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Estimate    string `json:"estimate"`
	Description string `json:"description"`
	Video       string `json:"video"`
}

// User is the submitting runner.
type User struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	TwitchName      string `json:"twitchName"`
	TwitterName     string `json:"twitterName"`
	SpeedruncomName string `json:"speedruncomName"`
}

// Submission is a registered game with its categories. Categories have no
// lifecycle outside their submission; both are refetched every tick and
// discarded after reconciliation.
type Submission struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Console     string     `json:"console"`
	Ratio       string     `json:"ratio"`
	Emulated    bool       `json:"emulated"`
	Categories  []Category `json:"categories"`
	User        User       `json:"user"`
}

// Marathon carries the marathon metadata we care about (the display name).
type Marathon struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
