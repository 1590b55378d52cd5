package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/metrics"
	"github.com/civiclens/backend/pkg/logger"
)

// Source is one scrape target. Type selects the transport: "rss" for XML
// feeds, "reddit" for the public hot.json listings, "html" for plain pages.
type Source struct {
	Name string
	URL  string
	Type string
}

// Item is one scraped unit of content before any scoring or persistence.
type Item struct {
	Title      string
	Content    string
	SourceName string
	SourceURL  string
	Platform   string
	Score      int
}

type Client struct {
	httpClient     *http.Client
	userAgent      string
	throttle       time.Duration
	itemsPerSource int
}

func NewClient(userAgent string, timeoutSec int, throttle time.Duration, itemsPerSource int) *Client {
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	if itemsPerSource <= 0 {
		itemsPerSource = 10
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		userAgent:      userAgent,
		throttle:       throttle,
		itemsPerSource: itemsPerSource,
	}
}

// FetchAll scrapes each source in order with a flat sleep between sources.
// A failed source is logged and skipped; partial results are still useful.
func (c *Client) FetchAll(ctx context.Context, sources []Source) []Item {
	var all []Item

	for i, source := range sources {
		items, err := c.FetchSource(ctx, source)
		if err != nil {
			metrics.ScrapeTotal.WithLabelValues(source.Name, "error").Inc()
			logger.Warn("Source scrape failed",
				zap.String("source", source.Name),
				zap.Error(err),
			)
		} else {
			metrics.ScrapeTotal.WithLabelValues(source.Name, "ok").Inc()
			all = append(all, items...)
		}

		if i < len(sources)-1 && c.throttle > 0 {
			select {
			case <-ctx.Done():
				return all
			case <-time.After(c.throttle):
			}
		}
	}

	return all
}

func (c *Client) FetchSource(ctx context.Context, source Source) ([]Item, error) {
	switch source.Type {
	case "rss":
		return c.fetchRSS(ctx, source)
	case "reddit":
		return c.fetchRedditListing(ctx, source)
	case "html":
		return c.fetchHTMLHeadlines(ctx, source)
	default:
		return nil, fmt.Errorf("unknown source type %q", source.Type)
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, application/rss+xml, application/xml, text/xml, text/html, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

// FetchDocument downloads a page and parses it for selector queries. Callers
// with source-specific markup heuristics build on this instead of the generic
// headline extraction.
func (c *Client) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
}

func (c *Client) fetchRSS(ctx context.Context, source Source) ([]Item, error) {
	body, err := c.get(ctx, source.URL)
	if err != nil {
		return nil, err
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, c.itemsPerSource)
	for _, entry := range feed.Channel.Items {
		if len(items) >= c.itemsPerSource {
			break
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}
		content := strings.TrimSpace(strings.TrimSpace(title) + " " + strings.TrimSpace(entry.Description))
		items = append(items, Item{
			Title:      title,
			Content:    content,
			SourceName: source.Name,
			SourceURL:  strings.TrimSpace(entry.Link),
			Platform:   "news",
		})
	}

	logger.Debug("RSS feed scraped",
		zap.String("source", source.Name),
		zap.Int("items", len(items)),
	)
	return items, nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string `json:"title"`
				Selftext    string `json:"selftext"`
				Score       int    `json:"score"`
				Permalink   string `json:"permalink"`
				NumComments int    `json:"num_comments"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *Client) fetchRedditListing(ctx context.Context, source Source) ([]Item, error) {
	body, err := c.get(ctx, source.URL)
	if err != nil {
		return nil, err
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}

	items := make([]Item, 0, c.itemsPerSource)
	for _, child := range listing.Data.Children {
		if len(items) >= c.itemsPerSource {
			break
		}
		post := child.Data
		content := strings.TrimSpace(strings.TrimSpace(post.Title) + " " + strings.TrimSpace(post.Selftext))
		if content == "" {
			continue
		}
		items = append(items, Item{
			Title:      post.Title,
			Content:    content,
			SourceName: source.Name,
			SourceURL:  "https://reddit.com" + post.Permalink,
			Platform:   "reddit",
			Score:      post.Score,
		})
	}

	logger.Debug("Reddit listing scraped",
		zap.String("source", source.Name),
		zap.Int("items", len(items)),
	)
	return items, nil
}

// fetchHTMLHeadlines pulls anchor texts from a plain page. Government portals
// change markup often, so the selector stays loose and filtering happens on
// the caller side.
func (c *Client) fetchHTMLHeadlines(ctx context.Context, source Source) ([]Item, error) {
	body, err := c.get(ctx, source.URL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	items := make([]Item, 0, c.itemsPerSource)
	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Text())
		href, _ := s.Attr("href")
		if title == "" || href == "" || len(title) < 10 {
			return true
		}
		if !strings.HasPrefix(href, "http") {
			href = strings.TrimRight(source.URL, "/") + "/" + strings.TrimLeft(href, "/")
		}
		items = append(items, Item{
			Title:      title,
			Content:    title,
			SourceName: source.Name,
			SourceURL:  href,
			Platform:   "news",
		})
		return len(items) < c.itemsPerSource
	})

	return items, nil
}

// ExtractArticleText fetches a page and joins its paragraph texts, capped at
// 100 paragraphs. Script, style, and chrome elements are dropped first.
func (c *Client) ExtractArticleText(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, nav, footer, header, aside").Remove()

	var paras []string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			paras = append(paras, text)
		}
		return len(paras) < 100
	})

	return strings.Join(paras, "\n"), nil
}

// CheckSource issues a single GET and reports whether the source responded
// with 200. Used by the source-status endpoint.
func (c *Client) CheckSource(ctx context.Context, url string) (int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return 0, elapsed, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	return resp.StatusCode, elapsed, nil
}
