// Package googleauth builds authenticated Google API services from an OAuth
// installed-app flow with a locally cached token.
package googleauth

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var scopes = []string{
	calendar.CalendarScope,
	sheets.SpreadsheetsScope,
	gmail.GmailSendScope,
}

// Services bundles the three Google APIs the agent talks to.
type Services struct {
	Calendar *calendar.Service
	Sheets   *sheets.Service
	Gmail    *gmail.Service
}

// New authenticates with the cached token at tokenFile and constructs the
// services. A missing token fails with a hint to run the auth flow first.
func New(ctx context.Context, clientID, clientSecret, tokenFile string) (*Services, error) {
	conf := oauthConfig(clientID, clientSecret)
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w (run 'resyagent auth' first)", tokenFile, err)
	}
	client := conf.Client(ctx, tok)

	cal, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	sh, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	gm, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return &Services{Calendar: cal, Sheets: sh, Gmail: gm}, nil
}

// Authorize runs the interactive device flow: prints the consent URL, reads
// the code from stdin, and caches the token at tokenFile.
func Authorize(ctx context.Context, clientID, clientSecret, tokenFile string) error {
	conf := oauthConfig(clientID, clientSecret)
	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n> ", authURL)

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read authorization code: %w", err)
	}
	tok, err := conf.Exchange(ctx, trimNewline(code))
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	return saveToken(tokenFile, tok)
}

func oauthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       scopes,
	}
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create token file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
