package usecase

import (
	"strings"
	"testing"

	"github.com/shoplens/backend/internal/domain"
)

func TestGroupKeyFor(t *testing.T) {
	t.Run("prefers link over title", func(t *testing.T) {
		c := candidate{product: domain.Product{Title: "Brand X Phone", Link: "https://shop.example/p/1"}}
		if got := groupKeyFor(c); got != "https://shop.example/p/1" {
			t.Errorf("groupKeyFor = %q, want the link", got)
		}
	})

	t.Run("falls back to normalized title", func(t *testing.T) {
		c := candidate{product: domain.Product{Title: "Brand X Phone!!"}}
		if got := groupKeyFor(c); got != "brand x phone" {
			t.Errorf("groupKeyFor = %q, want %q", got, "brand x phone")
		}
	})

	t.Run("bounds long title keys", func(t *testing.T) {
		c := candidate{product: domain.Product{Title: strings.Repeat("very long title ", 30)}}
		if got := groupKeyFor(c); len(got) > maxTitleKeyLen {
			t.Errorf("key length = %d, want <= %d", len(got), maxTitleKeyLen)
		}
	})

	t.Run("no title and no link yields no key", func(t *testing.T) {
		if got := groupKeyFor(candidate{}); got != "" {
			t.Errorf("groupKeyFor = %q, want empty", got)
		}
	})
}

func TestDeduplicate(t *testing.T) {
	t.Run("same link keeps the cheaper survivor", func(t *testing.T) {
		in := []candidate{
			{product: domain.Product{Title: "Brand X Phone", Link: "https://a/p", Price: fp(50000)}},
			{product: domain.Product{Title: "Brand X Phone 128GB", Link: "https://a/p", Price: fp(49000)}},
		}

		out := Deduplicate(in)

		if len(out) != 1 {
			t.Fatalf("survivors = %d, want 1", len(out))
		}
		if *out[0].product.Price != 49000 {
			t.Errorf("surviving price = %v, want 49000", *out[0].product.Price)
		}
	})

	t.Run("equal prices keep the first seen", func(t *testing.T) {
		in := []candidate{
			{product: domain.Product{Title: "First", Link: "https://a/p", Price: fp(100)}},
			{product: domain.Product{Title: "Second", Link: "https://a/p", Price: fp(100)}},
		}
		out := Deduplicate(in)
		if out[0].product.Title != "First" {
			t.Errorf("survivor = %q, want First", out[0].product.Title)
		}
	})

	t.Run("without comparable prices the higher rating wins", func(t *testing.T) {
		in := []candidate{
			{product: domain.Product{Title: "Brand X Phone", Rating: fp(4.0)}},
			{product: domain.Product{Title: "Brand  X  Phone!", Rating: fp(4.6)}},
		}

		out := Deduplicate(in)

		if len(out) != 1 {
			t.Fatalf("survivors = %d, want 1", len(out))
		}
		if *out[0].product.Rating != 4.6 {
			t.Errorf("surviving rating = %v, want 4.6", *out[0].product.Rating)
		}
	})

	t.Run("missing rating counts as zero", func(t *testing.T) {
		in := []candidate{
			{product: domain.Product{Title: "Brand X Phone"}},
			{product: domain.Product{Title: "Brand X Phone", Rating: fp(3.0)}},
		}
		out := Deduplicate(in)
		if out[0].product.Rating == nil || *out[0].product.Rating != 3.0 {
			t.Errorf("survivor = %+v, want the rated one", out[0].product)
		}
	})

	t.Run("never increases the count and keys stay unique", func(t *testing.T) {
		in := []candidate{
			{product: domain.Product{Title: "A", Link: "https://a"}},
			{product: domain.Product{Title: "B", Link: "https://b"}},
			{product: domain.Product{Title: "A copy", Link: "https://a"}},
			{product: domain.Product{Title: "C"}},
			{product: domain.Product{Title: "c"}},
		}

		out := Deduplicate(in)

		if len(out) > len(in) {
			t.Errorf("dedup grew the set: %d > %d", len(out), len(in))
		}
		seen := make(map[string]bool)
		for _, c := range out {
			key := groupKeyFor(c)
			if seen[key] {
				t.Errorf("duplicate group key %q in output", key)
			}
			seen[key] = true
		}
	})

	t.Run("keyless candidates are dropped", func(t *testing.T) {
		out := Deduplicate([]candidate{{}})
		if len(out) != 0 {
			t.Errorf("survivors = %d, want 0", len(out))
		}
	})

	t.Run("survivor order follows input order", func(t *testing.T) {
		in := []candidate{
			{product: domain.Product{Title: "High rank", Link: "https://1"}},
			{product: domain.Product{Title: "Mid rank", Link: "https://2"}},
			{product: domain.Product{Title: "Low rank", Link: "https://3"}},
		}
		out := Deduplicate(in)
		for i, want := range []string{"High rank", "Mid rank", "Low rank"} {
			if out[i].product.Title != want {
				t.Errorf("out[%d] = %q, want %q", i, out[i].product.Title, want)
			}
		}
	})
}
