package football

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"tp4-dataops/lib/htmlutil"
	"tp4-dataops/lib/restyutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/football")

var instrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	instrumentOutput = output
}

const (
	StatusPlayed    = "PLAYED"
	StatusScheduled = "SCHEDULED"
)

type Match struct {
	// iso date the card sits under, empty when no label preceded it
	Date      string
	Home      string
	Away      string
	HomeScore *int
	AwayScore *int
	Status    string
}

type Options struct {
	UserAgent string
	Timeout   time.Duration
}

type Scraper struct {
	http *resty.Client
}

func NewScraper(opts Options) Scraper {
	client := restyutil.NewScrapingClient(opts.Timeout, opts.UserAgent)
	client.SetHeader("accept", "text/html,*/*")
	client.SetHeader("accept-language", "fr-FR,fr;q=0.9,en;q=0.8")
	restyutil.InstrumentClient(client, tracer, instrumentOutput)
	return Scraper{http: client}
}

var dateRegex = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})$`)
var scoreRegex = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
var digitsRegex = regexp.MustCompile(`^\d+$`)

// walks the results page in document order. bare dd/mm/yyyy labels
// between the card groups set the date that the following cards
// belong to, so the walk keeps a running current date instead of
// looking at cards in isolation.
func (s Scraper) Scrape(ctx context.Context, url string) ([]Match, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := s.http.R().SetContext(ctx).Get(url)
	if err != nil {
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.IsError() {
		err := fmt.Errorf("fetch %s: status %s", url, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad response status")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparseable html")
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	var matches []Match
	currentDate := ""

	doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "div", "span", "h3", "h4", "p":
			text := htmlutil.CleanText(sel.Nodes[0])
			if groups := dateRegex.FindStringSubmatch(text); groups != nil {
				currentDate = toIsoDate(groups[1])
				return
			}
		}

		if sel.AttrOr("data-testid", "") != "match-card" {
			return
		}
		match, ok := parseCard(sel, currentDate)
		if !ok {
			slog.DebugContext(ctx, "skipping match card with missing team names")
			return
		}
		matches = append(matches, match)
	})

	matches = dedupe(matches)
	slog.DebugContext(ctx, "scraped football results", "matches", len(matches))
	span.SetAttributes(attribute.Int("matches", len(matches)))
	return matches, nil
}

func toIsoDate(ddmmyyyy string) string {
	parsed, err := time.Parse("02/01/2006", ddmmyyyy)
	if err != nil {
		return ""
	}
	return parsed.Format("2006-01-02")
}

func selectionText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	return htmlutil.CleanText(sel.Nodes[0])
}

func parseCard(card *goquery.Selection, date string) (Match, bool) {
	home := selectionText(card.Find("[data-testid=team-name-badge] .text-right").First())
	away := selectionText(card.Find("[data-testid=team-name-badge] .text-left").First())
	if home == "" || away == "" {
		// the markup varies across rounds, skip what we can't read
		return Match{}, false
	}

	match := Match{
		Date:   date,
		Home:   home,
		Away:   away,
		Status: StatusScheduled,
	}

	scoreBox := card.Find("[data-testid=live-score-element]").First()
	if len(scoreBox.Nodes) == 0 {
		return match, true
	}

	var nums []int
	scoreBox.Find("span").Each(func(_ int, span *goquery.Selection) {
		text := selectionText(span)
		if digitsRegex.MatchString(text) {
			n, err := strconv.Atoi(text)
			if err == nil {
				nums = append(nums, n)
			}
		}
	})
	if len(nums) >= 2 {
		match.HomeScore, match.AwayScore = &nums[0], &nums[1]
		match.Status = StatusPlayed
		return match, true
	}

	if groups := scoreRegex.FindStringSubmatch(selectionText(scoreBox)); groups != nil {
		h, _ := strconv.Atoi(groups[1])
		a, _ := strconv.Atoi(groups[2])
		match.HomeScore, match.AwayScore = &h, &a
		match.Status = StatusPlayed
	}
	return match, true
}

// the page repeats fixtures in several widgets, keep the first
// occurrence of every (date, home, away) triple.
func dedupe(matches []Match) []Match {
	seen := map[string]bool{}
	var out []Match
	for _, m := range matches {
		key := m.Date + "|" + m.Home + "|" + m.Away
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}
