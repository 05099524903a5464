package trigger

import (
	"fmt"

	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/httpclient"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"go.uber.org/zap"
)

// CallAsync calls an event trigger URL asynchronously with a profileId query
// parameter. Used to notify downstream consumers (email welcome flows, feed
// warm-up) after a profile completes onboarding. Failures are logged but never
// block or fail the triggering operation.
func CallAsync(triggerURL, profileID string, httpClient httpclient.Client) {
	if triggerURL == "" {
		// No trigger URL configured, skip silently
		return
	}

	go func() {
		targetURL := fmt.Sprintf("%s?profileId=%s", triggerURL, profileID)

		logger.Info("Calling trigger URL",
			zap.String("url", triggerURL),
			zap.String("profile_id", profileID))

		resp, err := httpClient.Get(targetURL)
		if err != nil {
			logger.Error("Failed to call trigger URL",
				zap.Error(err),
				zap.String("url", triggerURL),
				zap.String("profile_id", profileID))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			logger.Info("Trigger URL called successfully",
				zap.String("url", triggerURL),
				zap.String("profile_id", profileID),
				zap.Int("status_code", resp.StatusCode))
		} else {
			logger.Warn("Trigger URL returned non-success status",
				zap.String("url", triggerURL),
				zap.String("profile_id", profileID),
				zap.Int("status_code", resp.StatusCode))
		}
	}()
}
