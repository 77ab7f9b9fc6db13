// Command gcal-auth authorizes read-only Google Calendar access with OAuth Desktop App
// credentials and stores the token where the API server looks for it
// (google_calendar.token_path, which must match -token).
//
// Usage:
//
//	go run ./cmd/gcal-auth [-credentials google-credentials.json] [-token token.json]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"schedule-proposer/pkg/gcalendar"
	"schedule-proposer/pkg/log"
)

func main() {
	credsPath := flag.String("credentials", "google-credentials.json", "OAuth Desktop App credentials file")
	tokenPath := flag.String("token", gcalendar.DefaultTokenPath, "where to write the token")
	flag.Parse()

	ctx := context.Background()
	logger := log.Init(log.ZapConfig{Level: "info", Mode: log.ModeDevelopment, Encoding: log.EncodingConsole})

	data, err := os.ReadFile(*credsPath)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read credentials file %q: %v", *credsPath, err)
	}

	config, err := gcalendar.OAuthConfigFromJSON(data)
	if err != nil {
		logger.Fatalf(ctx, "%v (is %q an OAuth Desktop App credentials file?)", err, *credsPath)
	}

	fmt.Println("1. Open this URL and sign in with the calendar's Google account:")
	fmt.Println()
	fmt.Println(config.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
	fmt.Println()
	fmt.Print("2. Paste the authorization code here and press Enter: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		logger.Fatalf(ctx, "Failed to read authorization code: %v", err)
	}

	tok, err := config.Exchange(ctx, code)
	if err != nil {
		logger.Fatalf(ctx, "Failed to exchange authorization code: %v", err)
	}

	if err := gcalendar.SaveToken(*tokenPath, tok); err != nil {
		logger.Fatalf(ctx, "%v", err)
	}

	logger.Infof(ctx, "Token saved to %s; restart the API server to read busy time from Google Calendar", *tokenPath)
}
