package domain

// RawItem represents a single product-like record from a SerpAPI response.
// The provider mixes field names across engines and result blocks, so most
// fields are optional and a few arrive as either strings or numbers.
type RawItem struct {
	Title        string `json:"title,omitempty"`
	Name         string `json:"name,omitempty"`
	ProductTitle string `json:"product_title,omitempty"`

	Link        string `json:"link,omitempty"`
	ProductLink string `json:"product_link,omitempty"`
	ProductURL  string `json:"product_url,omitempty"`

	// Price fields are heterogeneous: "$199.00", "₹12,999" or a bare number
	Price          interface{} `json:"price,omitempty"`
	DisplayedPrice interface{} `json:"displayed_price,omitempty"`
	FormattedPrice interface{} `json:"formatted_price,omitempty"`
	ExtractedPrice *float64    `json:"extracted_price,omitempty"`

	Thumbnail         string `json:"thumbnail,omitempty"`
	SerpapiThumbnail  string `json:"serpapi_thumbnail,omitempty"`
	Image             string `json:"image,omitempty"`

	Rating        interface{} `json:"rating,omitempty"`
	ReviewsRating interface{} `json:"reviews_rating,omitempty"`
	RatingValue   interface{} `json:"rating_value,omitempty"`
	Reviews       int         `json:"reviews,omitempty"`

	Source   string `json:"source,omitempty"`
	Merchant string `json:"merchant,omitempty"`

	Sponsored bool `json:"sponsored,omitempty"`
	IsAd      bool `json:"is_ad,omitempty"`
}

// ShoppingResponse represents a SerpAPI shopping search response.
// Products can appear under several result blocks depending on the engine.
type ShoppingResponse struct {
	ShoppingResults []RawItem `json:"shopping_results,omitempty"`
	OrganicResults  []RawItem `json:"organic_results,omitempty"`
	InlineProducts  []RawItem `json:"inline_products,omitempty"`
	ProductResults  []RawItem `json:"product_results,omitempty"`
	Error           string    `json:"error,omitempty"`
}
