package usecase

import (
	"testing"

	"github.com/shoplens/backend/internal/domain"
)

func TestResolve(t *testing.T) {
	lr := NewLinkResolver(LinkResolverConfig{})

	t.Run("absent link stays direct", func(t *testing.T) {
		link, linkType := lr.Resolve("", "amazon", "brand x phone")
		if link != "" || linkType != domain.LinkTypeDirect {
			t.Errorf("got (%q, %s), want empty direct", link, linkType)
		}
	})

	t.Run("merchant link stays direct", func(t *testing.T) {
		original := "https://www.flipkart.com/brand-x-phone/p/itm123"
		link, linkType := lr.Resolve(original, "flipkart", "brand x phone")
		if link != original {
			t.Errorf("link rewritten to %q, want untouched", link)
		}
		if linkType != domain.LinkTypeDirect {
			t.Errorf("linkType = %s, want direct", linkType)
		}
	})

	t.Run("aggregator redirect becomes merchant search", func(t *testing.T) {
		link, linkType := lr.Resolve(
			"https://www.google.com/shopping/product/123?gl=in",
			"Flipkart",
			"brand x phone",
		)
		if linkType != domain.LinkTypeMerchantSearch {
			t.Fatalf("linkType = %s, want merchant_search", linkType)
		}
		if link != "https://www.flipkart.com/search?q=brand+x+phone" {
			t.Errorf("link = %q", link)
		}
	})

	t.Run("unknown merchant keeps the aggregator link", func(t *testing.T) {
		original := "https://www.google.com/shopping/product/456"
		link, linkType := lr.Resolve(original, "Tiny Local Store", "brand x phone")
		if link != original {
			t.Errorf("link = %q, want aggregator link kept", link)
		}
		if linkType != domain.LinkTypeProviderNative {
			t.Errorf("linkType = %s, want provider_native", linkType)
		}
	})

	t.Run("query is URL-encoded in the template", func(t *testing.T) {
		link, _ := lr.Resolve(
			"https://www.google.com/url?q=x",
			"amazon",
			"brand & phone 5%",
		)
		if link != "https://www.amazon.in/s?k=brand+%26+phone+5%25" {
			t.Errorf("link = %q", link)
		}
	})

	t.Run("unparsable link stays direct", func(t *testing.T) {
		original := "::not a url::"
		link, linkType := lr.Resolve(original, "amazon", "phone")
		if link != original || linkType != domain.LinkTypeDirect {
			t.Errorf("got (%q, %s), want untouched direct", link, linkType)
		}
	})

	t.Run("multi-fragment source rewrites deterministically", func(t *testing.T) {
		// Matches both "croma" and "tata"; sorted order makes "croma" win
		// on every call.
		aggregator := "https://www.google.com/shopping/product/789"
		source := "Croma - A Tata Enterprise"
		want := "https://www.croma.com/searchB?q=tv"
		for i := 0; i < 200; i++ {
			link, linkType := lr.Resolve(aggregator, source, "tv")
			if linkType != domain.LinkTypeMerchantSearch || link != want {
				t.Fatalf("call %d: got (%q, %s), want (%q, merchant_search)",
					i, link, linkType, want)
			}
		}
	})

	t.Run("synthetic tables are honored", func(t *testing.T) {
		lr := NewLinkResolver(LinkResolverConfig{
			MerchantSearchURLs: map[string]string{"shopx": "https://shopx.test/find?q=%s"},
			AggregatorHosts:    []string{"agg.test"},
		})
		link, linkType := lr.Resolve("https://agg.test/r/1", "ShopX", "tv")
		if linkType != domain.LinkTypeMerchantSearch || link != "https://shopx.test/find?q=tv" {
			t.Errorf("got (%q, %s)", link, linkType)
		}
	})
}
