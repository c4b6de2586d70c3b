package usecase

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// LinkResolverConfig holds the static merchant URL templates and the set of
// aggregator hosts whose redirect links should be rewritten.
type LinkResolverConfig struct {
	MerchantSearchURLs map[string]string
	AggregatorHosts    []string
}

// LinkResolver rewrites aggregator redirect links into merchant-specific
// search links and classifies how each final link was derived.
type LinkResolver struct {
	merchantEntries []merchantEntry
	aggregatorHosts []string
}

// merchantEntry pairs a source-name fragment with its search URL template.
// Entries are kept sorted by fragment so a source matching several
// fragments always rewrites to the same merchant.
type merchantEntry struct {
	fragment string
	template string
}

func sortedMerchantEntries(templates map[string]string) []merchantEntry {
	entries := make([]merchantEntry, 0, len(templates))
	for fragment, template := range templates {
		entries = append(entries, merchantEntry{fragment: fragment, template: template})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].fragment < entries[j].fragment
	})
	return entries
}

// defaultMerchantSearchURLs maps source-name fragments to search URL
// templates; %s receives the URL-encoded query.
var defaultMerchantSearchURLs = map[string]string{
	"amazon":   "https://www.amazon.in/s?k=%s",
	"flipkart": "https://www.flipkart.com/search?q=%s",
	"croma":    "https://www.croma.com/searchB?q=%s",
	"reliance": "https://www.reliancedigital.in/search?q=%s",
	"tata":     "https://www.tatacliq.com/search/?text=%s",
	"vijay":    "https://www.vijaysales.com/search/%s",
}

// defaultAggregatorHosts are host fragments of the shopping aggregator's
// own result and redirect pages.
var defaultAggregatorHosts = []string{
	"google.com",
	"google.co.in",
	"serpapi.com",
}

// NewLinkResolver creates a link resolver with the given tables, falling
// back to the built-in merchant templates and aggregator hosts.
func NewLinkResolver(config LinkResolverConfig) *LinkResolver {
	merchants := config.MerchantSearchURLs
	if merchants == nil {
		merchants = defaultMerchantSearchURLs
	}
	hosts := config.AggregatorHosts
	if hosts == nil {
		hosts = defaultAggregatorHosts
	}
	return &LinkResolver{
		merchantEntries: sortedMerchantEntries(merchants),
		aggregatorHosts: hosts,
	}
}

// Resolve returns the final link for an item and how it was derived.
// Aggregator redirects become merchant search links when a template matches
// the item's source; otherwise the aggregator link is kept and flagged.
// Fragments are tried in sorted order, so a source matching several
// fragments always rewrites to the alphabetically first merchant.
func (lr *LinkResolver) Resolve(link, source, query string) (string, domain.LinkType) {
	if link == "" {
		return link, domain.LinkTypeDirect
	}
	if !lr.isAggregatorLink(link) {
		return link, domain.LinkTypeDirect
	}

	sourceLower := strings.ToLower(source)
	for _, entry := range lr.merchantEntries {
		if strings.Contains(sourceLower, entry.fragment) {
			return fmt.Sprintf(entry.template, url.QueryEscape(query)), domain.LinkTypeMerchantSearch
		}
	}
	return link, domain.LinkTypeProviderNative
}

func (lr *LinkResolver) isAggregatorLink(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.ToLower(parsed.Host)
	for _, fragment := range lr.aggregatorHosts {
		if strings.Contains(host, fragment) {
			return true
		}
	}
	return false
}
