// Package qr reads and writes the text carried by supply-chain QR codes.
package qr

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Payload is the loosely typed record extracted from a scanned code. An empty
// string means the field was absent.
type Payload struct {
	BatchID string `json:"batchId,omitempty"`
	Actor   string `json:"actor,omitempty"`
	Role    string `json:"role,omitempty"`
	Note    string `json:"note,omitempty"`
	Image   string `json:"image,omitempty"`
}

// IsEmpty reports whether no fillable field was found.
func (p Payload) IsEmpty() bool {
	return p == Payload{}
}

// Segment delimiters of the key=value form.
const delimiters = "\r\n;,"

// Accepted spellings of each field in the key=value form, lowercase.
var fieldAliases = map[string]string{
	"batchid":   "batchId",
	"batch_id":  "batchId",
	"batch id":  "batchId",
	"batch-id":  "batchId",
	"actor":     "actor",
	"role":      "role",
	"note":      "note",
	"notes":     "note",
	"image":     "image",
	"img":       "image",
	"image_url": "image",
	"imageurl":  "image",
}

// ParsePayload extracts whatever fields it can from text and never fails.
// A JSON object is read by exact key name. Anything else is scanned for
// key=value or key:value segments; that form, and a lone token read as a bare
// batch id, only count when they yield a batch id. Other JSON values, such as
// null or 42, yield the empty payload. URL-looking input gets no
// special treatment here, see Classify.
func ParsePayload(text string) Payload {
	if p, ok := parseJSON(text); ok {
		return p
	}
	p := parseKeyValue(text)
	// A JSON value that is not an object carries no fields
	if p.BatchID == "" && !json.Valid([]byte(text)) {
		p.BatchID = parseBareID(text)
	}
	if p.BatchID == "" {
		return Payload{}
	}
	return p
}

func parseJSON(text string) (Payload, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(text), &obj); err != nil || obj == nil {
		return Payload{}, false
	}
	return Payload{
		BatchID: stringify(obj["batchId"]),
		Actor:   stringify(obj["actor"]),
		Role:    stringify(obj["role"]),
		Note:    stringify(obj["note"]),
		Image:   stringify(obj["image"]),
	}, true
}

// stringify coerces a decoded JSON value to text; null and absent are empty.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		out, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(out)
	}
}

func parseKeyValue(text string) Payload {
	var p Payload
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})
	for _, seg := range segments {
		i := strings.IndexAny(seg, "=:")
		if i < 0 {
			continue
		}
		key := strings.ToLower(trimValue(seg[:i]))
		value := trimValue(seg[i+1:])
		if value == "" {
			continue
		}
		switch fieldAliases[key] {
		case "batchId":
			p.BatchID = value
		case "actor":
			p.Actor = value
		case "role":
			p.Role = value
		case "note":
			p.Note = value
		case "image":
			p.Image = value
		}
	}
	return p
}

// parseBareID accepts a single token such as CHT-001-ABC, the content of the
// codes minted for new batches.
func parseBareID(text string) string {
	id := strings.TrimSpace(text)
	if id == "" || strings.ContainsAny(id, "=:"+delimiters+" \t\"'{}[]/") {
		return ""
	}
	return id
}

func trimValue(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'` \t")
}
