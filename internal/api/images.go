package api

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/boxity/boxity/internal/provenance"
)

// decodeImage accepts a data URL (data:image/png;base64,...) or bare base64.
// An empty value decodes to nil and is rejected by the checker.
func decodeImage(field, value string, maxSize int64) ([]byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if strings.HasPrefix(value, "data:") {
		i := strings.Index(value, ",")
		if i < 0 || !strings.HasSuffix(value[:i], ";base64") {
			return nil, &provenance.ValidationError{Fields: []string{field}, Message: field + " must be a base64 data URL"}
		}
		value = value[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, &provenance.ValidationError{Fields: []string{field}, Message: field + " is not valid base64"}
	}
	if int64(len(data)) > maxSize {
		return nil, &provenance.ValidationError{
			Fields:  []string{field},
			Message: fmt.Sprintf("%s exceeds %d bytes", field, maxSize),
		}
	}
	return data, nil
}
