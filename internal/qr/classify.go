package qr

import "regexp"

// Kind tells callers how to treat scanned text before parsing it.
type Kind int

const (
	// KindPayload is text to hand to ParsePayload.
	KindPayload Kind = iota
	// KindImage is a direct image reference; it bypasses parsing.
	KindImage
	// KindURL is a plain web link, which is not a supply payload.
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindURL:
		return "url"
	default:
		return "payload"
	}
}

var (
	imageRefPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)
	plainURLPattern = regexp.MustCompile(`(?i)^https?://`)
)

// Classify applies the scan rules that precede parsing. The image rule wins
// over the URL rule, so a link to a photo is an image reference.
func Classify(text string) Kind {
	switch {
	case imageRefPattern.MatchString(text):
		return KindImage
	case plainURLPattern.MatchString(text):
		return KindURL
	default:
		return KindPayload
	}
}
