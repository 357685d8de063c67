package book

import "fmt"

// Record is the flat, storage-ready representation of one catalog volume.
// Nil pointers are stored as NULL.
type Record struct {
	BookID              string   `db:"book_id" json:"book_id"`
	SearchKey           string   `db:"search_key" json:"search_key"`
	Title               *string  `db:"book_title" json:"book_title"`
	Subtitle            *string  `db:"book_subtitle" json:"book_subtitle"`
	Authors             string   `db:"book_authors" json:"book_authors"`
	Description         *string  `db:"book_description" json:"book_description"`
	IndustryIdentifiers *string  `db:"industry_identifiers" json:"industry_identifiers"`
	TextReadingMode     *bool    `db:"text_reading_mode" json:"text_reading_mode"`
	ImageReadingMode    *bool    `db:"image_reading_mode" json:"image_reading_mode"`
	PageCount           *int     `db:"page_count" json:"page_count"`
	Categories          string   `db:"categories" json:"categories"`
	Language            *string  `db:"language" json:"language"`
	ImageLink           *string  `db:"image_link" json:"image_link"`
	RatingsCount        *int     `db:"ratings_count" json:"ratings_count"`
	AverageRating       *float64 `db:"average_rating" json:"average_rating"`
	Country             *string  `db:"country" json:"country"`
	Saleability         *string  `db:"saleability" json:"saleability"`
	IsEbook             *bool    `db:"is_ebook" json:"is_ebook"`
	ListPriceAmount     *float64 `db:"list_price_amount" json:"list_price_amount"`
	ListPriceCurrency   *string  `db:"list_price_currency" json:"list_price_currency"`
	RetailPriceAmount   *float64 `db:"retail_price_amount" json:"retail_price_amount"`
	RetailPriceCurrency *string  `db:"retail_price_currency" json:"retail_price_currency"`
	BuyLink             *string  `db:"buy_link" json:"buy_link"`
	Year                string   `db:"year" json:"year"`
}

// Columns lists the api table columns in insert order.
var Columns = []string{
	"book_id", "search_key", "book_title", "book_subtitle", "book_authors",
	"book_description", "industry_identifiers", "text_reading_mode", "image_reading_mode",
	"page_count", "categories", "language", "image_link", "ratings_count", "average_rating",
	"country", "saleability", "is_ebook", "list_price_amount", "list_price_currency",
	"retail_price_amount", "retail_price_currency", "buy_link", "year",
}

// Values returns the record's column values in Columns order.
func (r Record) Values() []any {
	return []any{
		r.BookID, r.SearchKey, r.Title, r.Subtitle, r.Authors,
		r.Description, r.IndustryIdentifiers, r.TextReadingMode, r.ImageReadingMode,
		r.PageCount, r.Categories, r.Language, r.ImageLink, r.RatingsCount, r.AverageRating,
		r.Country, r.Saleability, r.IsEbook, r.ListPriceAmount, r.ListPriceCurrency,
		r.RetailPriceAmount, r.RetailPriceCurrency, r.BuyLink, r.Year,
	}
}

// TitleOrEmpty is the display title used in warnings and previews.
func (r Record) TitleOrEmpty() string {
	if r.Title == nil {
		return ""
	}
	return *r.Title
}

// Warning describes a record the batch skipped.
type Warning struct {
	BookID string `json:"book_id"`
	Title  string `json:"title"`
	Err    error  `json:"-"`
}

func (w Warning) Error() string {
	return fmt.Sprintf("book skipped: %s: %v", w.Title, w.Err)
}

// Message is the user-facing form of the warning.
func (w Warning) Message() string {
	if w.Err == nil {
		return "book skipped: " + w.Title
	}
	return w.Error()
}

// BatchResult is the outcome of one UpsertBatch call.
type BatchResult struct {
	Inserted int
	Warnings []Warning
}
