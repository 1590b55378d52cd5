package policy

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/scraper"
	"github.com/civiclens/backend/pkg/logger"
)

const liveItemLimit = 15

// Update is a policy item scraped from a live government source. Unlike
// curated notifications these carry no notification number; deduplication
// falls back to title plus source URL.
type Update struct {
	Title           string
	Ministry        string
	Content         string
	SourceURL       string
	PublicationDate time.Time
	Source          string
}

// LiveFetcher scrapes official portals for fresh policy activity. Markup on
// these sites changes without notice, so the selectors stay deliberately
// loose and failures degrade to an empty slice.
type LiveFetcher struct {
	client   *scraper.Client
	throttle time.Duration
}

func NewLiveFetcher(client *scraper.Client, throttle time.Duration) *LiveFetcher {
	return &LiveFetcher{client: client, throttle: throttle}
}

// FetchWeeklyUpdates scrapes PIB and SEBI in order with a flat pause between
// sources. A failed source is logged and skipped.
func (f *LiveFetcher) FetchWeeklyUpdates(ctx context.Context, daysBack int) []Update {
	var updates []Update

	pib, err := f.ScrapePIBReleases(ctx, daysBack)
	if err != nil {
		logger.Warn("PIB scrape failed", zap.Error(err))
	} else {
		updates = append(updates, pib...)
	}

	if !f.pause(ctx) {
		return updates
	}

	sebi, err := f.ScrapeSEBIUpdates(ctx)
	if err != nil {
		logger.Warn("SEBI scrape failed", zap.Error(err))
	} else {
		updates = append(updates, sebi...)
	}

	return updates
}

func (f *LiveFetcher) pause(ctx context.Context) bool {
	if f.throttle <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(f.throttle):
		return true
	}
}

// ScrapePIBReleases walks the Press Information Bureau listing, follows each
// release link and pulls the ministry line and opening paragraph.
func (f *LiveFetcher) ScrapePIBReleases(ctx context.Context, daysBack int) ([]Update, error) {
	listURL := scraper.PolicySources["pib_releases"]
	doc, err := f.client.FetchDocument(ctx, listURL)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -daysBack)
	var updates []Update

	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		href, ok := sel.Attr("href")
		if title == "" || !ok || href == "" {
			return true
		}
		if !strings.Contains(href, "PressRelease") && !strings.Contains(href, "PressRelese") {
			return true
		}

		sourceURL := href
		if !strings.HasPrefix(href, "http") {
			sourceURL = "https://pib.gov.in/" + strings.TrimLeft(href, "/")
		}

		detail, err := f.client.FetchDocument(ctx, sourceURL)
		if err != nil {
			logger.Debug("PIB detail fetch failed", zap.String("url", sourceURL), zap.Error(err))
			return true
		}

		// Releases on the listing page are current, so the publication
		// date defaults to now and always lies inside the window.
		published := time.Now()
		if published.Before(cutoff) {
			return true
		}

		ministry := "Government of India"
		detail.Find("p, span, div, h2, h3").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.TrimSpace(el.Text())
			if strings.Contains(text, "Ministry") && len(text) < 120 {
				parts := strings.Split(text, ":")
				if m := strings.TrimSpace(parts[len(parts)-1]); m != "" {
					ministry = m
				}
				return false
			}
			return true
		})

		content := strings.TrimSpace(detail.Find("p").First().Text())
		if content == "" {
			content = title
		}

		updates = append(updates, Update{
			Title:           title,
			Ministry:        ministry,
			Content:         content,
			SourceURL:       sourceURL,
			PublicationDate: published,
			Source:          "PIB",
		})
		return len(updates) < liveItemLimit
	})

	logger.Info("PIB releases scraped", zap.Int("count", len(updates)))
	return updates, nil
}

var sebiRelevanceKeywords = []string{"regulation", "circular", "guideline", "amendment"}

// ScrapeSEBIUpdates pulls the SEBI recent-updates listing and keeps only
// links whose titles look like regulatory activity.
func (f *LiveFetcher) ScrapeSEBIUpdates(ctx context.Context) ([]Update, error) {
	listURL := scraper.PolicySources["sebi_updates"]
	doc, err := f.client.FetchDocument(ctx, listURL)
	if err != nil {
		return nil, err
	}

	var updates []Update
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		href, ok := sel.Attr("href")
		if title == "" || !ok || href == "" {
			return true
		}
		if !strings.HasPrefix(href, "http") {
			href = "https://www.sebi.gov.in" + href
		}

		lower := strings.ToLower(title)
		relevant := false
		for _, keyword := range sebiRelevanceKeywords {
			if strings.Contains(lower, keyword) {
				relevant = true
				break
			}
		}
		if !relevant {
			return true
		}

		updates = append(updates, Update{
			Title:           title,
			Ministry:        "Securities and Exchange Board of India",
			Content:         title,
			SourceURL:       href,
			PublicationDate: time.Now(),
			Source:          "SEBI",
		})
		return len(updates) < liveItemLimit
	})

	logger.Info("SEBI updates scraped", zap.Int("count", len(updates)))
	return updates, nil
}
