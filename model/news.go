package model

// Headline is one article returned by the news provider.
type Headline struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
}
