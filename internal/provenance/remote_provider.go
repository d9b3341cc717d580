package provenance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/boxity/boxity/internal/config"
	"github.com/boxity/boxity/internal/metrics"
	"github.com/boxity/boxity/internal/models"
	"github.com/boxity/boxity/internal/utils"
	"github.com/go-resty/resty/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Unix timestamps above this are taken to be in milliseconds.
const unixMillisThreshold = 1e12

// RemoteProvider reads batches from the ledger service. Records come back
// loosely typed and are mapped field by field onto models.Batch. Remote
// batches are read-only here.
type RemoteProvider struct {
	client      *resty.Client
	cache       *cache.Cache
	negativeTTL time.Duration
	log         *logrus.Entry
}

var _ BatchProvider = (*RemoteProvider)(nil)

type cachedLookup struct {
	batch models.Batch
	found bool
}

func NewRemoteProvider(cfg config.Ledger) *RemoteProvider {
	return &RemoteProvider{
		client: resty.New().
			SetBaseURL(cfg.URL).
			SetTimeout(cfg.RequestTimeout).
			SetHeader("Accept", "application/json"),
		cache:       cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		negativeTTL: cfg.NegativeCacheTTL,
		log:         utils.NewSublogger("ledger"),
	}
}

func (p *RemoteProvider) Name() string { return SourceRemote }

func (p *RemoteProvider) FindBatch(ctx context.Context, id string) (models.Batch, bool, error) {
	if v, ok := p.cache.Get(id); ok {
		hit := v.(cachedLookup)
		return hit.batch.Clone(), hit.found, nil
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Get("/batches/{id}")
	if err != nil {
		p.log.WithError(err).WithField("id", id).Warn("Batch lookup failed")
		metrics.ExternalFailures.WithLabelValues("ledger").Inc()
		return models.Batch{}, false, fmt.Errorf("%w: ledger lookup: %v", ErrExternalService, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		p.cache.Set(id, cachedLookup{}, p.negativeTTL)
		return models.Batch{}, false, nil
	}
	if !resp.IsSuccess() {
		p.log.WithField("statusCode", resp.StatusCode()).WithField("id", id).Warn("Batch lookup has not been successful")
		metrics.ExternalFailures.WithLabelValues("ledger").Inc()
		return models.Batch{}, false, fmt.Errorf("%w: ledger responded %d", ErrExternalService, resp.StatusCode())
	}

	batch, err := decodeRemoteBatch(resp.Body(), id)
	if err != nil {
		p.log.WithError(err).WithField("id", id).Warn("Failed to parse response")
		metrics.ExternalFailures.WithLabelValues("ledger").Inc()
		return models.Batch{}, false, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	// Callers get their own copy of the event slice
	p.cache.Set(id, cachedLookup{batch: batch.Clone(), found: true}, cache.DefaultExpiration)
	return batch, true, nil
}

// decodeRemoteBatch maps an arbitrary JSON object onto a Batch without
// assuming the field types the service used.
func decodeRemoteBatch(body []byte, id string) (batch models.Batch, err error) {
	var raw interface{}
	err = json.Unmarshal(body, &raw)
	if err != nil {
		return
	}
	record, ok := raw.(map[string]interface{})
	if !ok {
		err = fmt.Errorf("expected an object, got %T", raw)
		return
	}

	normalizeTimestamp(record, "createdAt")
	if events, ok := record["events"].([]interface{}); ok {
		for _, e := range events {
			if event, ok := e.(map[string]interface{}); ok {
				normalizeTimestamp(event, "timestamp")
			}
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &batch,
	})
	if err != nil {
		return
	}
	err = decoder.Decode(record)
	if err != nil {
		return
	}

	if batch.ID == "" {
		batch.ID = id
	}
	if batch.ID != id {
		err = fmt.Errorf("asked for %s, got %s", id, batch.ID)
	}
	return
}

// normalizeTimestamp rewrites a numeric unix time (seconds or milliseconds) as ISO-8601.
func normalizeTimestamp(record map[string]interface{}, key string) {
	v, ok := record[key].(float64)
	if !ok {
		return
	}
	var t time.Time
	if v > unixMillisThreshold {
		t = time.UnixMilli(int64(v))
	} else {
		t = time.Unix(int64(v), 0)
	}
	record[key] = models.FormatTimestamp(t)
}
