package football

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tp4-dataops/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<div class="rounds">
	<h3>12/10/2025</h3>
	<div data-testid="match-card">
		<div data-testid="team-name-badge"><span class="text-right">FC Nouadhibou</span></div>
		<div data-testid="live-score-element"><span>2</span><span>&nbsp;-&nbsp;</span><span>1</span></div>
		<div data-testid="team-name-badge"><span class="text-left">ASC Tevragh-Zeina</span></div>
	</div>
	<div data-testid="match-card">
		<div data-testid="team-name-badge"><span class="text-right">FC Nouadhibou</span></div>
		<div data-testid="live-score-element"><span>2</span><span>-</span><span>1</span></div>
		<div data-testid="team-name-badge"><span class="text-left">ASC Tevragh-Zeina</span></div>
	</div>
	<p>13/10/2025</p>
	<div data-testid="match-card">
		<div data-testid="team-name-badge"><span class="text-right">ASC Snim</span></div>
		<div data-testid="team-name-badge"><span class="text-left">Nouakchott Kings</span></div>
	</div>
	<div data-testid="match-card">
		<div data-testid="team-name-badge"><span class="text-right">AS Garde</span></div>
		<div data-testid="live-score-element">3 - 0</div>
		<div data-testid="team-name-badge"><span class="text-left">AS Police</span></div>
	</div>
	<div data-testid="match-card">
		<div data-testid="team-name-badge"><span class="text-right">Orphan FC</span></div>
	</div>
</div>
</body></html>`

func intPtr(n int) *int {
	return &n
}

func TestScrape(t *testing.T) {
	defer telemetry.SetupForTesting(t, "test:scrapers/football")()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "text/html; charset=utf-8")
		w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	s := NewScraper(Options{Timeout: time.Second * 5})
	matches, err := s.Scrape(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, matches, 3, "duplicate and unreadable cards are dropped")

	require.Equal(t, Match{
		Date:      "2025-10-12",
		Home:      "FC Nouadhibou",
		Away:      "ASC Tevragh-Zeina",
		HomeScore: intPtr(2),
		AwayScore: intPtr(1),
		Status:    StatusPlayed,
	}, matches[0])

	require.Equal(t, "2025-10-13", matches[1].Date)
	require.Equal(t, "ASC Snim", matches[1].Home)
	require.Nil(t, matches[1].HomeScore)
	require.Equal(t, StatusScheduled, matches[1].Status)

	require.Equal(t, StatusPlayed, matches[2].Status, "bare score text still parses")
	require.Equal(t, intPtr(3), matches[2].HomeScore)
	require.Equal(t, intPtr(0), matches[2].AwayScore)
}

func TestScrapeBadStatus(t *testing.T) {
	defer telemetry.SetupForTesting(t, "test:scrapers/football")()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := NewScraper(Options{Timeout: time.Second * 5})
	_, err := s.Scrape(context.Background(), server.URL)
	require.Error(t, err)
}

func TestScrapeUnreachable(t *testing.T) {
	defer telemetry.SetupForTesting(t, "test:scrapers/football")()

	s := NewScraper(Options{Timeout: time.Second})
	_, err := s.Scrape(context.Background(), "http://127.0.0.1:1/results")
	require.Error(t, err)
}
