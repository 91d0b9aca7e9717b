package models

import "time"

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaRef is an opaque reference to an uploaded blob. The store never
// interprets the URL.
type MediaRef struct {
	Kind MediaKind `json:"kind"`
	URL  string    `json:"url"`
}

type StatusPost struct {
	ID       string     `json:"id"`
	AuthorID string     `json:"author_id"`
	Text     string     `json:"text,omitempty"`
	Media    []MediaRef `json:"media,omitempty"`
	PostedAt time.Time  `json:"posted_at"`
}

// AuthorInfo is the author projection attached to feed entries.
type AuthorInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type FeedPost struct {
	ID       string     `json:"id"`
	Author   AuthorInfo `json:"author"`
	Text     string     `json:"text,omitempty"`
	Media    []MediaRef `json:"media,omitempty"`
	PostedAt time.Time  `json:"posted_at"`
}
