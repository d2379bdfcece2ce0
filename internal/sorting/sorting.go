// Package sorting provides pure comparator selection and filtering for
// video and category listings. Sorts are keyed by a sort token, stable,
// and never mutate their input; an unrecognized token returns the input
// order unchanged. Filters return new slices in input order.
package sorting

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bmoreira/tubecrate/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Video sort tokens.
const (
	DateAddedDesc     = "dateAddedDesc"
	DateAddedAsc      = "dateAddedAsc"
	DatePublishedDesc = "datePublishedDesc"
	DatePublishedAsc  = "datePublishedAsc"
	TitleAsc          = "titleAsc"
	TitleDesc         = "titleDesc"
	ViewsDesc         = "viewsDesc"
	ViewsAsc          = "viewsAsc"
	DurationDesc      = "durationDesc"
	DurationAsc       = "durationAsc"
)

// Category sort tokens.
const (
	DateCreatedDesc = "dateCreatedDesc"
	DateCreatedAsc  = "dateCreatedAsc"
	NameAsc         = "nameAsc"
	NameDesc        = "nameDesc"
)

// DefaultToken is the ordering applied when the caller expresses no preference.
const DefaultToken = DateAddedDesc

// Sorter holds the collator used for locale-aware string comparison.
type Sorter struct {
	coll *collate.Collator
}

// New creates a Sorter collating strings for the given BCP 47 locale
// tag. An empty or malformed tag falls back to language-neutral
// collation.
func New(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return &Sorter{coll: collate.New(tag)}
}

// Videos returns a new slice ordered by the given token.
func (s *Sorter) Videos(videos []models.Video, token string) []models.Video {
	out := make([]models.Video, len(videos))
	copy(out, videos)

	less := s.videoLess(token)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

// Categories returns a new slice ordered by the given token.
func (s *Sorter) Categories(categories []models.Category, token string) []models.Category {
	out := make([]models.Category, len(categories))
	copy(out, categories)

	var less func(a, b *models.Category) bool
	switch token {
	case DateCreatedDesc:
		less = func(a, b *models.Category) bool { return a.CreatedAt.After(b.CreatedAt) }
	case DateCreatedAsc:
		less = func(a, b *models.Category) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case NameAsc:
		less = func(a, b *models.Category) bool { return s.coll.CompareString(a.Name, b.Name) < 0 }
	case NameDesc:
		less = func(a, b *models.Category) bool { return s.coll.CompareString(a.Name, b.Name) > 0 }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

func (s *Sorter) videoLess(token string) func(a, b *models.Video) bool {
	switch token {
	case DateAddedDesc:
		return func(a, b *models.Video) bool { return a.AddedAt.After(b.AddedAt) }
	case DateAddedAsc:
		return func(a, b *models.Video) bool { return a.AddedAt.Before(b.AddedAt) }
	case DatePublishedDesc:
		return func(a, b *models.Video) bool { return a.PublishedAt.After(b.PublishedAt) }
	case DatePublishedAsc:
		return func(a, b *models.Video) bool { return a.PublishedAt.Before(b.PublishedAt) }
	case TitleAsc:
		return func(a, b *models.Video) bool { return s.coll.CompareString(a.Title, b.Title) < 0 }
	case TitleDesc:
		return func(a, b *models.Video) bool { return s.coll.CompareString(a.Title, b.Title) > 0 }
	case ViewsDesc:
		return func(a, b *models.Video) bool { return a.ViewCount > b.ViewCount }
	case ViewsAsc:
		return func(a, b *models.Video) bool { return a.ViewCount < b.ViewCount }
	case DurationDesc:
		return func(a, b *models.Video) bool { return ParseDuration(a.Duration) > ParseDuration(b.Duration) }
	case DurationAsc:
		return func(a, b *models.Video) bool { return ParseDuration(a.Duration) < ParseDuration(b.Duration) }
	default:
		return nil
	}
}

// VideoTokens lists every recognized video sort token.
func VideoTokens() []string {
	return []string{
		DateAddedDesc, DateAddedAsc,
		DatePublishedDesc, DatePublishedAsc,
		TitleAsc, TitleDesc,
		ViewsDesc, ViewsAsc,
		DurationDesc, DurationAsc,
	}
}

// Search keeps the videos whose title or channel contains term as a
// case-insensitive substring. A blank term matches everything.
func Search(videos []models.Video, term string) []models.Video {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]models.Video, len(videos))
		copy(out, videos)
		return out
	}

	out := []models.Video{}
	for _, v := range videos {
		if strings.Contains(strings.ToLower(v.Title), term) || strings.Contains(strings.ToLower(v.Channel), term) {
			out = append(out, v)
		}
	}
	return out
}

// Unwatched keeps the videos not yet marked watched.
func Unwatched(videos []models.Video) []models.Video {
	out := []models.Video{}
	for _, v := range videos {
		if !v.Watched {
			out = append(out, v)
		}
	}
	return out
}

// Favorites keeps the videos marked favorite.
func Favorites(videos []models.Video) []models.Video {
	out := []models.Video{}
	for _, v := range videos {
		if v.Favorite {
			out = append(out, v)
		}
	}
	return out
}

var durationPattern = regexp.MustCompile(`PT(\d+H)?(\d+M)?(\d+S)?`)

// ParseDuration converts an ISO-8601 duration (e.g. PT15M30S) into
// seconds. Malformed input parses to 0.
func ParseDuration(iso string) int {
	match := durationPattern.FindStringSubmatch(iso)
	if match == nil {
		return 0
	}

	hours := atoiComponent(match[1])
	minutes := atoiComponent(match[2])
	seconds := atoiComponent(match[3])

	return hours*3600 + minutes*60 + seconds
}

// atoiComponent parses a duration component like "15M", ignoring the
// trailing unit letter.
func atoiComponent(c string) int {
	if c == "" {
		return 0
	}
	n, err := strconv.Atoi(c[:len(c)-1])
	if err != nil {
		return 0
	}
	return n
}
