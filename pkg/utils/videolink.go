package utils

import (
	"net/url"
	"path"
	"strings"
)

const (
	VideoProviderYouTube  = "youtube"
	VideoProviderVimeo    = "vimeo"
	VideoProviderExternal = "external"
)

// VideoLink classifies a submitted video URL so the presentation layer can
// embed recognized hosts and show anything else as a plain external link.
type VideoLink struct {
	Provider string `json:"provider"`
	EmbedID  string `json:"embed_id,omitempty"`
	URL      string `json:"url"`
}

// ParseVideoLink returns nil for an empty URL. Host recognition is by
// substring, same policy the portal has always used: "youtube"/"youtu.be"
// and "vimeo" anywhere in the URL.
func ParseVideoLink(raw string) *VideoLink {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "youtube") || strings.Contains(lower, "youtu.be"):
		return &VideoLink{Provider: VideoProviderYouTube, EmbedID: youtubeID(raw), URL: raw}
	case strings.Contains(lower, "vimeo"):
		return &VideoLink{Provider: VideoProviderVimeo, EmbedID: vimeoID(raw), URL: raw}
	}
	return &VideoLink{Provider: VideoProviderExternal, URL: raw}
}

// youtubeID extracts the embed id from the v= query parameter, or from the
// path tail for youtu.be short links.
func youtubeID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if strings.Contains(strings.ToLower(u.Host), "youtu.be") {
		if tail := strings.Trim(u.Path, "/"); tail != "" {
			return path.Base(tail)
		}
	}
	return ""
}

// vimeoID takes the numeric path tail of a vimeo URL.
func vimeoID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	tail := path.Base(strings.Trim(u.Path, "/"))
	if tail == "" || tail == "." {
		return ""
	}
	for _, r := range tail {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return tail
}
