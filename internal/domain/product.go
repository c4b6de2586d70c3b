package domain

// LinkType describes how a result's outbound link was derived
type LinkType string

const (
	// LinkTypeDirect means the link came straight from the listing (or is absent)
	LinkTypeDirect LinkType = "direct"
	// LinkTypeMerchantSearch means an aggregator redirect was rewritten into a merchant search URL
	LinkTypeMerchantSearch LinkType = "merchant_search"
	// LinkTypeProviderNative means the aggregator link was kept because no merchant template matched
	LinkTypeProviderNative LinkType = "provider_native"
)

// Product represents a normalized product listing from a shopping source
type Product struct {
	Title    string   `json:"title"`
	PriceRaw string   `json:"price_raw,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Link     string   `json:"link,omitempty"`
	Image    string   `json:"image,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Source   string   `json:"source"`
}

// RankedResult is a Product with final ranking flags attached.
// At most one result per response carries IsRecommended.
type RankedResult struct {
	Product
	IsRecommended bool     `json:"is_recommended"`
	LinkType      LinkType `json:"link_type"`
}

// SearchRequest represents a product search request
type SearchRequest struct {
	Query      string `json:"query" binding:"required,min=1"`
	MaxResults int    `json:"max_results" binding:"omitempty,min=1,max=50"`
}

// SearchResponse is the payload returned to API clients
type SearchResponse struct {
	Query        string         `json:"query"`
	TotalResults int            `json:"total_results"`
	Products     []RankedResult `json:"products"`
}
