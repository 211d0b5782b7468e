// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package usage

import (
	"reflect"
	"time"

	posthog "github.com/posthog/posthog-go"

	apimodel "github.com/gatehouse-id/gatehouse/internal/api/model"
	"github.com/gatehouse-id/gatehouse/internal/logging"
)

const (
	APIKey      = "phc_b2Vq7Rt0cJm1XaUyKfLpW3sHdN8gEoZi5TxCnA4PvYk"
	APIEndpoint = "https://us.i.posthog.com"
)

type PostHogSender struct {
}

func NewPostHogSender() (Sender, error) {
	return PostHogSender{}, nil
}

func (s PostHogSender) SendStats(stats *apimodel.Stats, devMode bool) error {
	client, err := posthog.NewWithConfig(APIKey, posthog.Config{Endpoint: APIEndpoint, Logger: &logging.PosthogLogger{}})
	if err == nil && client != nil {
		defer func() { _ = client.Close() }()

		event := posthog.Capture{
			DistinctId: stats.ConsoleID,
			Event:      "stats",
			Timestamp:  time.Now(),
			Properties: map[string]any{
				"$process_person_profile": false,
				"dev_mode":                devMode,
			},
		}

		statsValue := reflect.ValueOf(stats).Elem()
		statsType := statsValue.Type()

		for i := 0; i < statsValue.NumField(); i++ {
			field := statsType.Field(i)
			key := field.Name
			value := statsValue.Field(i).Interface()
			event.Properties[key] = value
		}

		err = client.Enqueue(event)
	}

	return err
}
