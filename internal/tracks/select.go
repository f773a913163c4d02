// Package tracks turns query results into the URL list handed to the player.
//
// Selection runs in a fixed order: extract, keep playable hosts, escape,
// optionally shuffle, truncate.
package tracks

import (
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"
	"github.com/tessro/play-notion/internal/notion"
)

// DefaultHosts are the sources the downloader is known to handle.
var DefaultHosts = []string{"youtube", "bandcamp", "soundcloud"}

// Options configures Select.
type Options struct {
	Random bool
	Limit  int
	// Hosts overrides DefaultHosts when non-empty.
	Hosts []string
	// Rand is used for shuffling. A nil Rand uses the global source.
	Rand *rand.Rand
}

// Selection is the outcome of Select.
type Selection struct {
	// Gathered is the number of playable URLs before truncation.
	Gathered int
	Shuffled bool
	URLs     []string
}

// Select runs the full selection over records.
func Select(records []notion.Record, opts Options) Selection {
	hosts := opts.Hosts
	if len(hosts) == 0 {
		hosts = DefaultHosts
	}

	urls := EscapeAmpersands(FilterPlayable(ExtractURLs(records), hosts))
	sel := Selection{Gathered: len(urls)}

	if opts.Random {
		Shuffle(urls, opts.Rand)
		sel.Shuffled = true
	}
	sel.URLs = Truncate(urls, opts.Limit)
	return sel
}

// ExtractURLs returns the URL of each record in order. Records without a URL
// are skipped.
func ExtractURLs(records []notion.Record) []string {
	return lo.FilterMap(records, func(r notion.Record, _ int) (string, bool) {
		if r.URL == nil {
			return "", false
		}
		return *r.URL, true
	})
}

// IsPlayable reports whether url contains one of hosts anywhere in it.
func IsPlayable(url string, hosts []string) bool {
	return lo.SomeBy(hosts, func(h string) bool {
		return strings.Contains(url, h)
	})
}

// FilterPlayable keeps the URLs matching one of hosts, preserving order.
func FilterPlayable(urls []string, hosts []string) []string {
	return lo.Filter(urls, func(u string, _ int) bool {
		return IsPlayable(u, hosts)
	})
}

// Escape replaces every "&" with "\&" so the URL survives a shell.
func Escape(url string) string {
	return strings.ReplaceAll(url, "&", `\&`)
}

// EscapeAmpersands escapes every URL.
func EscapeAmpersands(urls []string) []string {
	return lo.Map(urls, func(u string, _ int) string {
		return Escape(u)
	})
}

// Shuffle permutes urls in place, uniformly at random.
func Shuffle(urls []string, r *rand.Rand) {
	swap := func(i, j int) { urls[i], urls[j] = urls[j], urls[i] }
	if r == nil {
		rand.Shuffle(len(urls), swap)
		return
	}
	r.Shuffle(len(urls), swap)
}

// Truncate returns at most the first limit URLs. A limit of zero or less
// returns an empty list.
func Truncate(urls []string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	if len(urls) > limit {
		return urls[:limit]
	}
	return urls
}
