package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/conf-tracker/internal/conference"
)

// TwitterNotifier posts newly stored conferences to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// Notify posts one tweet per record
func (n *TwitterNotifier) Notify(records []*conference.Record) error {
	for i, rec := range records {
		tweet := formatTweet(rec)

		_, _, err := n.client.Statuses.Update(tweet, nil)
		if err != nil {
			return fmt.Errorf("failed to post tweet for conference %s: %w", rec.NormalizedURL, err)
		}

		// Rate limiting: wait between tweets
		if i < len(records)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatTweet formats a conference record as a tweet
func formatTweet(rec *conference.Record) string {
	tweet := "🎤 New conference tracked!\n\n"
	tweet += fmt.Sprintf("📍 %s\n", rec.Name)

	if rec.City != conference.Unknown {
		location := rec.City
		if rec.Country != conference.Unknown {
			location += ", " + rec.Country
		}
		tweet += fmt.Sprintf("🏢 %s\n", location)
	}

	if rec.StartDate != nil {
		dates := rec.StartDate.Format("Jan 2")
		if rec.EndDate != nil && !rec.EndDate.Equal(*rec.StartDate) {
			dates += " - " + rec.EndDate.Format("Jan 2")
		}
		tweet += fmt.Sprintf("📅 %s\n", dates)
	}

	tweet += fmt.Sprintf("\n🔗 %s\n", rec.URL)

	for i, topic := range rec.Topics {
		if i >= 3 {
			break
		}
		tweet += "#" + topic + " "
	}

	// Twitter limit is 280 characters
	if len(tweet) > 280 {
		// Truncate and add ellipsis
		tweet = tweet[:277] + "..."
	}

	return tweet
}
