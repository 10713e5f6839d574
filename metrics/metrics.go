package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
)

// RunCounters are the totals of one run.
type RunCounters struct {
	Converted  int
	Discarded  int
	Failed     int
	SavedBytes int64
}

type IncMetricPayload struct {
	Name   string                 `json:"name"`
	Value  int64                  `json:"value"`
	Labels IncMetricPayloadLabels `json:"labels"`
}

type IncMetricPayloadLabels struct {
	Type *string `json:"type"`
}

var client = &http.Client{Timeout: 10 * time.Second}

// PushRun sends the counters of a run to METRICS_ENDPOINT,
// authenticating with METRICS_TOKEN.
func PushRun(c RunCounters) error {
	return pushRun(os.Getenv("METRICS_ENDPOINT"), os.Getenv("METRICS_TOKEN"), c)
}

func pushRun(endpoint, token string, c RunCounters) error {
	if endpoint == "" {
		return errors.New("no metrics endpoint")
	}

	converted, discarded, failed := "converted", "discarded", "failed"
	payloads := []*IncMetricPayload{
		{Name: "images_processed", Value: int64(c.Converted), Labels: IncMetricPayloadLabels{Type: &converted}},
		{Name: "images_processed", Value: int64(c.Discarded), Labels: IncMetricPayloadLabels{Type: &discarded}},
		{Name: "images_processed", Value: int64(c.Failed), Labels: IncMetricPayloadLabels{Type: &failed}},
		{Name: "bytes_saved", Value: c.SavedBytes},
	}
	for _, p := range payloads {
		if err := sendMetrics(endpoint, token, p); err != nil {
			return errors.Wrapf(err, "failed to push %s", p.Name)
		}
	}
	return nil
}

func sendMetrics(endpoint, token string, payload *IncMetricPayload) error {
	json, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshall payload")
	}

	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(json))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return errors.Errorf("metrics endpoint returned %s", resp.Status)
	}
	return nil
}
