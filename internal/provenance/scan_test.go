package provenance

import (
	"context"
	"testing"
	"time"

	"github.com/boxity/boxity/internal/files"
	"github.com/boxity/boxity/internal/qr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScanService() *Service {
	return NewService(files.NewBatchStore(files.NewMemorySlot())).WithClock(func() time.Time { return testNow })
}

func TestScanSamplePayload(t *testing.T) {
	res, err := newScanService().Scan(context.Background(), qr.EncodePayload(qr.SamplePayload))
	require.NoError(t, err)

	assert.Equal(t, "payload", res.Kind)
	assert.Equal(t, SourceLocal, res.Source)
	assert.Equal(t, qr.SamplePayload.BatchID, res.Fields.BatchID)
	assert.Equal(t, qr.SamplePayload.Actor, res.Fields.Actor)
	assert.Equal(t, qr.SamplePayload.Role, res.Fields.Role)
	assert.Empty(t, res.Warnings)
	assert.Contains(t, res.Message, autoFilledPrefix)
}

func TestScanKeyValue(t *testing.T) {
	res, err := newScanService().Scan(context.Background(), "batchId=CHT-002-XYZ; actor=ColdChain; role=Wizard; note=this note is definitely longer than forty characters")
	require.NoError(t, err)

	assert.Equal(t, "CHT-002-XYZ", res.Fields.BatchID)
	assert.Equal(t, "ColdChain", res.Fields.Actor)
	assert.Empty(t, res.Fields.Role)
	assert.Equal(t, "this note is definitely longer than forty characters", res.Fields.Note)
	assert.Contains(t, res.Changes, "Note → this note is definitely longer than fort…")
	assert.Equal(t, []string{`Unknown role "Wizard" ignored`}, res.Warnings)
}

func TestScanUnknownBatchWarns(t *testing.T) {
	res, err := newScanService().Scan(context.Background(), "batchId=CHT-404-ZZZ, actor=Bob")
	require.NoError(t, err)

	assert.Empty(t, res.Fields.BatchID)
	assert.Equal(t, "Bob", res.Fields.Actor)
	assert.Equal(t, []string{`Scanned batch "CHT-404-ZZZ" was not found`}, res.Warnings)
}

func TestScanImageAndURL(t *testing.T) {
	s := newScanService()

	res, err := s.Scan(context.Background(), "https://cdn.example.com/box.JPG")
	require.NoError(t, err)
	assert.Equal(t, "image", res.Kind)
	assert.Equal(t, "https://cdn.example.com/box.JPG", res.Fields.Image)
	assert.Equal(t, MessageImageSet, res.Message)

	_, err = s.Scan(context.Background(), "https://example.com/track?id=CHT-DEMO")
	assert.ErrorIs(t, err, ErrNotSupplyPayload)
}

func TestScanNothingFillable(t *testing.T) {
	for _, text := range []string{"", "hello world", `{"foo": "bar"}`} {
		res, err := newScanService().Scan(context.Background(), text)
		require.NoError(t, err, text)
		assert.Empty(t, res.Changes, text)
		assert.Equal(t, MessageNoFields, res.Message, text)
	}
}
