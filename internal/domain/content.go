package domain

import "strings"

// ContentKind is the media type produced by a download
type ContentKind string

const (
	ContentVideo ContentKind = "video"
	ContentAudio ContentKind = "audio"
	ContentPhoto ContentKind = "photo"
)

// Content is downloaded media ready to be sent back
type Content struct {
	Kind    ContentKind
	Source  string
	Caption string
}

// Song is an audio recognition result
type Song struct {
	Title  string
	Artist string
	Lyrics string
}

// Platform is a social network the bot can download from
type Platform struct {
	Name   string
	Label  string
	Domain string
}

// Platforms lists supported platforms in menu order
var Platforms = []Platform{
	{Name: "instagram", Label: "Instagram", Domain: "instagram.com"},
	{Name: "tiktok", Label: "TikTok", Domain: "tiktok.com"},
	{Name: "youtube", Label: "YouTube", Domain: "youtube.com"},
	{Name: "snapchat", Label: "Snapchat", Domain: "snapchat.com"},
	{Name: "likee", Label: "Likee", Domain: "likee.video"},
	{Name: "pinterest", Label: "Pinterest", Domain: "pinterest.com"},
	{Name: "threads", Label: "Threads", Domain: "threads.net"},
}

// PlatformByName finds a platform by its name
func PlatformByName(name string) (Platform, bool) {
	for _, p := range Platforms {
		if p.Name == name {
			return p, true
		}
	}
	return Platform{}, false
}

// DetectLink returns the first word of text that points to a supported platform
func DetectLink(text string) (string, bool) {
	for _, word := range strings.Fields(text) {
		lower := strings.ToLower(word)
		for _, p := range Platforms {
			if strings.Contains(lower, p.Domain) {
				return word, true
			}
		}
	}
	return "", false
}
