package domain

// Kind distinguishes the two searchable document types.
type Kind string

const (
	// KindProduct is a marketplace listing.
	KindProduct Kind = "product"
	// KindNews is a neighborhood news post.
	KindNews Kind = "news"
)

// StatusAvailable marks a listing that can still be purchased.
const StatusAvailable = "available"

// Document is one stored listing or news post. Listings carry price,
// category, seller and status; news posts leave those zero-valued.
// CreatedAt is an RFC-3339 UTC string, normalized at the store boundary.
type Document struct {
	ID          string
	Kind        Kind
	Title       string
	Body        string
	ImageURLs   []string
	Price       int
	CreatedAt   string
	Category    string
	SellerID    string
	FavoritedBy []string
	ViewedBy    []string
	ViewCount   int
	Status      string
}

// FirstImageURL returns the first image URL or "" when the document has none.
func (d Document) FirstImageURL() string {
	if len(d.ImageURLs) == 0 {
		return ""
	}
	return d.ImageURLs[0]
}

// FavoritedByUser reports whether userID is in the document's favorite set.
func (d Document) FavoritedByUser(userID string) bool {
	return containsString(d.FavoritedBy, userID)
}

// ViewedByUser reports whether userID is in the document's viewer set.
func (d Document) ViewedByUser(userID string) bool {
	return containsString(d.ViewedBy, userID)
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
