package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := map[string]Kind{
		"/demo/wh1.jpg":                   KindImage,
		"https://cdn.example.com/BOX.PNG": KindImage,
		"ipfs://bafy/photo.webp":          KindImage,
		"https://example.com":             KindURL,
		"HTTP://EXAMPLE.COM/path":         KindURL,
		"CHT-001-ABC":                     KindPayload,
		`{"batchId":"CHT-001-ABC"}`:       KindPayload,
		"batchId=CHT-001-ABC":             KindPayload,
		"ftp://example.com":               KindPayload,
		"/demo/wh1.jpg?size=2":            KindPayload,
	}
	for text, want := range tests {
		assert.Equal(t, want, Classify(text), text)
	}
	assert.Equal(t, "image", KindImage.String())
}
