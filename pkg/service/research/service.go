package research

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/interfaces"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
	"github.com/reneeyyx/Safety1st/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const (
	defaultUserAgent   = "Safety1st-research/1.0"
	defaultFetchLimit  = 4
	defaultCacheTTL    = 24 * time.Hour
	maxSegments        = 20
	maxSegmentLength   = 600
	minSegmentLength   = 80
	fetchTimeout       = 15 * time.Second
	maxResponseBodyLen = 2 << 20
)

// client implements interfaces.ResearchService
type client struct {
	httpClient *http.Client
	cache      *fileCache
	sources    []source
	userAgent  string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the HTTP client, mainly for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithCacheDir enables the on-disk page cache
func WithCacheDir(dir string) Option {
	return func(c *client) {
		c.cache = newFileCache(dir, c.cache.ttl)
	}
}

// WithCacheTTL changes the page cache lifetime
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *client) {
		c.cache.ttl = ttl
	}
}

// WithSources replaces the curated source index, mainly for tests
func WithSources(sources []source) Option {
	return func(c *client) {
		c.sources = sources
	}
}

// New creates a research service over the curated source index
func New(opts ...Option) interfaces.ResearchService {
	c := &client{
		httpClient: &http.Client{Timeout: fetchTimeout},
		cache:      newFileCache("", defaultCacheTTL),
		sources:    defaultSources,
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Gather fetches the curated pages relevant to the scenario, extracts the
// paragraphs matching the scenario keywords and digests them into a research
// context. Fetch failures are logged and skipped; if nothing could be
// fetched a static fallback context is returned so the narrative layer
// always has something to work with.
func (c *client) Gather(ctx context.Context, in *model.CrashInputs) (*model.ResearchContext, error) {
	if in == nil {
		return nil, goerr.New("crash inputs are required")
	}

	keywords := buildKeywords(in)
	sources := c.selectSources(keywords)

	var mu sync.Mutex
	var segments []string
	var fetched []string

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(defaultFetchLimit)

	for _, src := range sources {
		eg.Go(func() error {
			body, err := c.fetch(ctx, src.URL)
			if err != nil {
				logging.From(ctx).Warn("research fetch failed",
					slog.String("url", src.URL), slog.Any("error", err))
				return nil
			}

			paragraphs := extractParagraphs(body)
			matched := filterSegments(paragraphs, keywords)

			mu.Lock()
			defer mu.Unlock()
			segments = append(segments, matched...)
			if len(matched) > 0 {
				fetched = append(fetched, src.URL)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "research gathering aborted")
	}

	if len(segments) == 0 {
		return fallbackContext(in), nil
	}
	if len(segments) > maxSegments {
		segments = segments[:maxSegments]
	}

	return &model.ResearchContext{
		Summary:         strings.Join(segments, "\n\n"),
		GenderBiasNotes: biasNotes(segments),
		Sources:         fetched,
	}, nil
}

func (c *client) fetch(ctx context.Context, url string) ([]byte, error) {
	if body, ok := c.cache.Get(url); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build request", goerr.V("url", url))
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch page", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status fetching page",
			goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyLen))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read page body", goerr.V("url", url))
	}

	if err := c.cache.Put(url, body); err != nil {
		logging.From(ctx).Warn("failed to cache page", slog.String("url", url), slog.Any("error", err))
	}

	return body, nil
}

// selectSources keeps sources whose tags intersect the keywords, always
// keeping untagged-match general coverage when nothing intersects.
func (c *client) selectSources(keywords []string) []source {
	kw := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		kw[k] = true
	}

	var matched []source
	for _, src := range c.sources {
		for _, tag := range src.Tags {
			if kw[tag] {
				matched = append(matched, src)
				break
			}
		}
	}

	if len(matched) == 0 {
		return c.sources
	}
	return matched
}

// buildKeywords derives the search vocabulary from the scenario
func buildKeywords(in *model.CrashInputs) []string {
	keywords := []string{"injury", "crash", "odds"}

	if in.Gender == types.GenderFemale {
		keywords = append(keywords, "female", "gender", "women")
	} else {
		keywords = append(keywords, "male")
	}
	if in.Pregnant {
		keywords = append(keywords, "pregnant", "pregnancy")
	}
	if in.Restraints.SeatbeltUsed {
		keywords = append(keywords, "seatbelt", "restraint")
	} else {
		keywords = append(keywords, "unbelted")
	}

	keywords = append(keywords, string(in.CrashSide))
	return keywords
}

// filterSegments keeps paragraphs that mention at least one keyword and are
// long enough to carry substance, truncating the very long ones.
func filterSegments(paragraphs, keywords []string) []string {
	var matched []string
	for _, p := range paragraphs {
		if len(p) < minSegmentLength {
			continue
		}
		lower := strings.ToLower(p)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				if len(p) > maxSegmentLength {
					p = p[:maxSegmentLength] + "..."
				}
				matched = append(matched, p)
				break
			}
		}
	}
	return matched
}

// biasNotes pulls out the segments that speak to occupant profile disparities
func biasNotes(segments []string) []string {
	var notes []string
	for _, s := range segments {
		lower := strings.ToLower(s)
		if strings.Contains(lower, "female") || strings.Contains(lower, "women") ||
			strings.Contains(lower, "pregnan") || strings.Contains(lower, "gender") {
			notes = append(notes, s)
		}
	}
	return notes
}

// fallbackContext is returned when no source could be fetched. It carries
// the well-established findings the curated pages document, so offline runs
// still get a meaningful narrative.
func fallbackContext(in *model.CrashInputs) *model.ResearchContext {
	notes := []string{
		"Standard frontal crash tests are anchored to the mid-size adult male dummy; smaller-statured occupants see belt and airbag geometry tuned for a different body.",
	}
	if in.Gender == types.GenderFemale {
		notes = append(notes,
			"Published field data report higher odds of moderate-to-serious injury for belted female occupants in comparable frontal crashes.")
	}
	if in.Pregnant {
		notes = append(notes,
			"Pregnant occupants face elevated abdominal loading risk; correct lap belt placement below the belly is the dominant mitigation factor.")
	}

	return &model.ResearchContext{
		Summary:         "No live research sources were reachable; using built-in crash safety context.",
		GenderBiasNotes: notes,
		Sources:         []string{},
	}
}
