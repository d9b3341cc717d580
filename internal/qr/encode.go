package qr

import (
	"encoding/json"

	qrcode "github.com/skip2/go-qrcode"
)

// SamplePayload is the payload of the downloadable test code.
var SamplePayload = Payload{
	BatchID: "CHT-001-ABC",
	Actor:   "QuickShip Inc",
	Role:    "3PL",
	Note:    "Received at WH",
	Image:   "/demo/wh1.jpg",
}

// EncodePayload renders p in the compact JSON form read by ParsePayload.
func EncodePayload(p Payload) string {
	out, err := json.Marshal(p)
	if err != nil {
		// Payload holds strings only
		panic(err)
	}
	return string(out)
}

// PNG renders content as a square QR image with medium error correction.
func PNG(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
