// YouTube Data API v3 [MetadataService] implementation
//
// Wraps GET /videos?part=snippet,contentDetails,statistics with an API
// key credential and a client-side request rate limit.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bmoreira/tubecrate/internal/models"
	"github.com/bmoreira/tubecrate/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// probeVideoID is a well-known public video used by TestAPIKey.
const probeVideoID = "dQw4w9WgXcQ"

var apiKeyPattern = regexp.MustCompile(`^AIza[A-Za-z0-9_-]{35}$`)

// videoURLPatterns capture the video id from the URL shapes users paste.
var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([^&\n?#]+)`),
	regexp.MustCompile(`youtu\.be/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&\n?#]+)`),
	regexp.MustCompile(`m\.youtube\.com/watch\?v=([^&\n?#]+)`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// YouTubeService implements MetadataService against the YouTube Data API v3.
type YouTubeService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewYouTubeService creates a service instance. baseURL defaults to the
// public API; requestsPerSecond <= 0 disables client-side limiting.
func NewYouTubeService(baseURL, apiKey string, requestsPerSecond float64) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}

	return &YouTubeService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		limiter:    limiter,
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// videoResource mirrors the slice of the API response the organizer uses.
type videoResource struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Description  string `json:"description"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// FetchVideo resolves a video id (or pasted URL) to its metadata.
func (y *YouTubeService) FetchVideo(ctx context.Context, externalRef string) (*models.VideoMetadata, error) {
	if y.apiKey == "" {
		return nil, shared.ErrMissingAPIKey
	}

	videoID, err := ParseVideoURL(externalRef)
	if err != nil {
		return nil, err
	}

	var resource videoResource
	if err := y.doRequest(ctx, "snippet,contentDetails,statistics", videoID, &resource); err != nil {
		return nil, err
	}

	if len(resource.Items) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, shared.ErrMetadataMissing)
	}

	item := resource.Items[0]

	// The API reports view counts as decimal strings; an absent or
	// malformed count becomes 0, matching the original client.
	views, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)

	meta := &models.VideoMetadata{
		ExternalRef:  item.ID,
		Title:        item.Snippet.Title,
		Channel:      item.Snippet.ChannelTitle,
		ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
		ViewCount:    views,
		Duration:     item.ContentDetails.Duration,
		Description:  item.Snippet.Description,
	}
	if item.Snippet.PublishedAt != "" {
		if t, err := parseTimestamp(item.Snippet.PublishedAt); err == nil {
			meta.PublishedAt = t
		}
	}
	return meta, nil
}

// TestAPIKey verifies the configured key against a known public video.
func (y *YouTubeService) TestAPIKey(ctx context.Context) error {
	if y.apiKey == "" {
		return shared.ErrMissingAPIKey
	}
	if !ValidateAPIKeyFormat(y.apiKey) {
		return fmt.Errorf("%w: malformed key", shared.ErrInvalidAPIKey)
	}

	var resource videoResource
	if err := y.doRequest(ctx, "snippet", probeVideoID, &resource); err != nil {
		return err
	}
	if len(resource.Items) == 0 {
		return fmt.Errorf("%w: key returned no results", shared.ErrInvalidAPIKey)
	}
	return nil
}

func (y *YouTubeService) doRequest(ctx context.Context, part, videoID string, result any) error {
	if y.limiter != nil {
		if err := y.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
		}
	}

	query := url.Values{}
	query.Set("part", part)
	query.Set("id", videoID)
	query.Set("key", y.apiKey)
	apiURL := y.baseURL + "/videos?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return y.mapStatusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (y *YouTubeService) mapStatusError(resp *http.Response) error {
	var body apiError
	json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusForbidden:
		for _, e := range body.Error.Errors {
			if strings.Contains(strings.ToLower(e.Reason), "quota") {
				return shared.ErrQuotaExceeded
			}
		}
		return shared.ErrInvalidAPIKey
	case http.StatusNotFound:
		return shared.ErrMetadataMissing
	case http.StatusBadRequest:
		if body.Error.Message != "" {
			return fmt.Errorf("%w (status 400): %s", shared.ErrAPIRequest, body.Error.Message)
		}
		return fmt.Errorf("%w: bad request", shared.ErrAPIRequest)
	default:
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ParseVideoURL extracts a video id from the URL formats YouTube uses
// (watch, short link, embed, mobile) or accepts a bare 11-character id.
func ParseVideoURL(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", shared.ErrInvalidVideoURL)
	}

	for _, pattern := range videoURLPatterns {
		if match := pattern.FindStringSubmatch(trimmed); match != nil {
			return match[1], nil
		}
	}
	return "", fmt.Errorf("%w: %s", shared.ErrInvalidVideoURL, trimmed)
}

// ValidateAPIKeyFormat reports whether key looks like a YouTube Data
// API key (AIza followed by 35 characters).
func ValidateAPIKeyFormat(key string) bool {
	return apiKeyPattern.MatchString(key)
}
