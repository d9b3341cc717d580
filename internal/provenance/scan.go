package provenance

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/boxity/boxity/internal/metrics"
	"github.com/boxity/boxity/internal/models"
	"github.com/boxity/boxity/internal/qr"
)

// Longest note echoed back in a scan summary.
const maxNotePreview = 40

const (
	MessageNoFields  = "No fillable fields found. You can submit manually."
	MessageImageSet  = "Image URL has been set from QR code"
	autoFilledPrefix = "Auto-filled: "
)

// ScanResult tells the caller which event form fields a scanned code fills.
type ScanResult struct {
	Kind string `json:"kind"`
	// Values to pre-fill; empty fields are left alone
	Fields qr.Payload `json:"fields"`
	// Provider the scanned batch was found in
	Source   string   `json:"source,omitempty"`
	Changes  []string `json:"changes"`
	Warnings []string `json:"warnings,omitempty"`
	Message  string   `json:"message"`
}

// Scan interprets text read from a QR code. Plain web links are refused with
// ErrNotSupplyPayload; a batch id that no provider knows yields a warning.
func (s *Service) Scan(ctx context.Context, text string) (ScanResult, error) {
	text = strings.TrimSpace(text)
	kind := qr.Classify(text)
	res := ScanResult{Kind: kind.String(), Changes: []string{}}

	switch kind {
	case qr.KindURL:
		metrics.Scans.WithLabelValues("rejected").Inc()
		return res, fmt.Errorf("%w: plain URL", ErrNotSupplyPayload)
	case qr.KindImage:
		metrics.Scans.WithLabelValues("image").Inc()
		res.Fields.Image = text
		res.Changes = append(res.Changes, "Image URL → set")
		res.Message = MessageImageSet
		return res, nil
	}

	p := qr.ParsePayload(text)

	if p.BatchID != "" {
		batch, source, err := s.providers.FindBatch(ctx, p.BatchID)
		switch {
		case err == nil:
			res.Fields.BatchID = batch.ID
			res.Source = source
			res.Changes = append(res.Changes, fmt.Sprintf("Batch → %s (%s)", batch.ID, source))
		case IsNotFound(err):
			res.Warnings = append(res.Warnings, fmt.Sprintf("Scanned batch %q was not found", p.BatchID))
		default:
			s.log.WithError(err).WithField("batch", p.BatchID).Warn("Failed to resolve scanned batch")
			res.Warnings = append(res.Warnings, fmt.Sprintf("Could not look up batch %q", p.BatchID))
		}
	}
	if p.Actor != "" {
		res.Fields.Actor = p.Actor
		res.Changes = append(res.Changes, "Actor → "+p.Actor)
	}
	if p.Role != "" {
		if models.IsRole(p.Role) {
			res.Fields.Role = p.Role
			res.Changes = append(res.Changes, "Role → "+p.Role)
		} else {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Unknown role %q ignored", p.Role))
		}
	}
	if p.Note != "" {
		res.Fields.Note = p.Note
		res.Changes = append(res.Changes, "Note → "+preview(p.Note, maxNotePreview))
	}
	if p.Image != "" {
		res.Fields.Image = p.Image
		res.Changes = append(res.Changes, "Image URL → set")
	}

	if len(res.Changes) == 0 {
		metrics.Scans.WithLabelValues("empty").Inc()
		res.Message = MessageNoFields
		return res, nil
	}
	metrics.Scans.WithLabelValues("filled").Inc()
	res.Message = autoFilledPrefix + strings.Join(res.Changes, ", ")
	return res, nil
}

func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}
