package serpapi

import (
	"strconv"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// defaultSource labels items whose response block carries no merchant name
const defaultSource = "Google Shopping"

// CollectItems gathers product-like records from every result block the
// provider may scatter them across.
func CollectItems(resp *domain.ShoppingResponse) []domain.RawItem {
	if resp == nil {
		return nil
	}
	items := make([]domain.RawItem, 0,
		len(resp.ShoppingResults)+len(resp.OrganicResults)+len(resp.InlineProducts)+len(resp.ProductResults))
	items = append(items, resp.ShoppingResults...)
	items = append(items, resp.OrganicResults...)
	items = append(items, resp.InlineProducts...)
	items = append(items, resp.ProductResults...)
	return items
}

// IsSponsored reports whether a raw item is an ad. The provider marks these
// inconsistently, so the title is checked as well.
func IsSponsored(item domain.RawItem) bool {
	if item.Sponsored || item.IsAd {
		return true
	}
	title := strings.ToLower(rawTitle(item))
	return strings.Contains(title, "sponsored") ||
		strings.Contains(title, "ad -") ||
		strings.HasPrefix(title, "ad ")
}

// MapToProduct lifts a raw provider record into the domain Product shape,
// resolving the provider's aliased field names. Returns nil for records
// missing both a title and a link; they can never be shown to a user.
func MapToProduct(item domain.RawItem) *domain.Product {
	title := rawTitle(item)
	link := firstNonEmpty(item.Link, item.ProductLink, item.ProductURL)
	if title == "" && link == "" {
		return nil
	}

	product := &domain.Product{
		Title:    title,
		PriceRaw: firstNonEmpty(
			coerceString(item.Price),
			coerceString(item.DisplayedPrice),
			coerceString(item.FormattedPrice)),
		Link:     link,
		Image:    firstNonEmpty(item.Thumbnail, item.SerpapiThumbnail, item.Image),
		Source:   firstNonEmpty(item.Merchant, item.Source, defaultSource),
	}

	if item.ExtractedPrice != nil && *item.ExtractedPrice >= 0 {
		price := *item.ExtractedPrice
		product.Price = &price
	}

	if rating := rawRating(item); rating != nil && *rating >= 0 && *rating <= 5 {
		product.Rating = rating
	}

	return product
}

// rawRating resolves the provider's aliased rating fields
func rawRating(item domain.RawItem) *float64 {
	for _, v := range []interface{}{item.Rating, item.ReviewsRating, item.RatingValue} {
		if rating := coerceFloat(v); rating != nil {
			return rating
		}
	}
	return nil
}

func rawTitle(item domain.RawItem) string {
	return firstNonEmpty(item.Title, item.Name, item.ProductTitle)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// coerceString renders a heterogeneous provider value as display text
func coerceString(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	default:
		return ""
	}
}

// coerceFloat parses a heterogeneous provider value as a number
func coerceFloat(v interface{}) *float64 {
	switch value := v.(type) {
	case float64:
		return &value
	case int:
		f := float64(value)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
