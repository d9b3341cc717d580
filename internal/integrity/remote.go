package integrity

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/boxity/boxity/internal/config"
	"github.com/boxity/boxity/internal/metrics"
	"github.com/boxity/boxity/internal/models"
	"github.com/boxity/boxity/internal/provenance"
	"github.com/boxity/boxity/internal/utils"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// RemoteChecker delegates the comparison to an image analysis service. A
// call is made once; failures are not retried.
type RemoteChecker struct {
	client *resty.Client
	log    *logrus.Entry
}

var _ Checker = (*RemoteChecker)(nil)

type compareRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type compareResponse struct {
	Differences []struct {
		Region      string  `json:"region"`
		Severity    string  `json:"severity"`
		Description string  `json:"description"`
		Confidence  float64 `json:"confidence"`
	} `json:"differences"`
}

func NewRemoteChecker(cfg config.Integrity) *RemoteChecker {
	return &RemoteChecker{
		client: resty.New().
			SetBaseURL(cfg.URL).
			SetTimeout(cfg.RequestTimeout).
			SetHeader("Accept", "application/json"),
		log: utils.NewSublogger("integrity"),
	}
}

func (c *RemoteChecker) Check(ctx context.Context, before, after []byte) ([]models.Difference, error) {
	if err := requireImages(before, after); err != nil {
		return nil, err
	}

	var result compareResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(compareRequest{
			Before: base64.StdEncoding.EncodeToString(before),
			After:  base64.StdEncoding.EncodeToString(after),
		}).
		SetResult(&result).
		Post("")
	if err != nil {
		c.log.WithError(err).Warn("Integrity check failed")
		metrics.ExternalFailures.WithLabelValues("integrity").Inc()
		return nil, fmt.Errorf("%w: integrity check: %v", provenance.ErrExternalService, err)
	}
	if !resp.IsSuccess() {
		c.log.WithField("statusCode", resp.StatusCode()).Warn("Integrity check has not been successful")
		metrics.ExternalFailures.WithLabelValues("integrity").Inc()
		return nil, fmt.Errorf("%w: integrity service responded %d", provenance.ErrExternalService, resp.StatusCode())
	}

	out := make([]models.Difference, 0, len(result.Differences))
	for _, d := range result.Differences {
		out = append(out, models.Difference{
			Location:    d.Region,
			Severity:    mapSeverity(d.Severity),
			Description: d.Description,
			Confidence:  d.Confidence,
		})
	}
	return out, nil
}

// mapSeverity folds the service's four grades into ours. Unknown grades count as low.
func mapSeverity(s string) models.Severity {
	switch strings.ToLower(s) {
	case "critical", "high":
		return models.SeverityHigh
	case "medium":
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
