package report

import (
	"fmt"
	"strconv"
	"strings"
)

// Name identifies one report in the fixed catalog.
type Name string

const (
	EbookAvailability       Name = "ebook-availability"
	AuthorMostBooks         Name = "author-most-books"
	AuthorTopRating         Name = "author-top-rating"
	MostExpensive           Name = "most-expensive"
	LongRecentBooks         Name = "long-recent-books"
	Discounted              Name = "discounted"
	AvgPagesByFormat        Name = "avg-pages-by-format"
	TopAuthors              Name = "top-authors"
	ProlificAuthors         Name = "prolific-authors"
	AvgPagesByCategory      Name = "avg-pages-by-category"
	ManyAuthors             Name = "many-authors"
	AboveAverageRatings     Name = "above-average-ratings"
	SameAuthorYear          Name = "same-author-year"
	MagicTitles             Name = "magic-titles"
	PriciestYear            Name = "priciest-year"
	ConsecutiveYears        Name = "consecutive-years"
	SameAuthorYearPublisher Name = "same-author-year-publisher"
	AvgPriceByFormat        Name = "avg-price-by-format"
	RatingOutliers          Name = "rating-outliers"
	TopRatedProlificAuthor  Name = "top-rated-prolific-author"
)

// PlaceholderNote is the single cell returned by the consecutive-years report.
const PlaceholderNote = "Not implemented: needs window function or richer logic"

// Definition is one catalog entry. Query is executed verbatim.
type Definition struct {
	Name        Name   `json:"name"`
	Number      int    `json:"number"`
	Label       string `json:"label"`
	Query       string `json:"-"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Display renders the numbered label shown in menus.
func (d Definition) Display() string {
	return fmt.Sprintf("%d. %s", d.Number, d.Label)
}

// Averages are cast to float8; numeric columns scan as strings.
var definitions = []Definition{
	{
		Name:  EbookAvailability,
		Label: "Availability: eBooks vs Physical Books",
		Query: `SELECT is_ebook, COUNT(*) AS count FROM api GROUP BY is_ebook`,
	},
	{
		Name:  AuthorMostBooks,
		Label: "Publisher with Most Books",
		Query: `SELECT book_authors, COUNT(*) AS count FROM api GROUP BY book_authors ORDER BY count DESC LIMIT 1`,
	},
	{
		Name:  AuthorTopRating,
		Label: "Publisher with Highest Average Rating",
		Query: `SELECT book_authors, AVG(average_rating)::float8 AS avg_rating FROM api GROUP BY book_authors ORDER BY avg_rating DESC NULLS LAST LIMIT 1`,
	},
	{
		Name:  MostExpensive,
		Label: "Top 5 Most Expensive Books",
		Query: `SELECT book_title, retail_price_amount FROM api ORDER BY retail_price_amount DESC NULLS LAST LIMIT 5`,
	},
	{
		Name:  LongRecentBooks,
		Label: "Books After 2010 with >=500 Pages",
		Query: `SELECT book_title, page_count, year FROM api WHERE year > '2010' AND page_count >= 500`,
	},
	{
		Name:  Discounted,
		Label: "Books With Discounts > 20%",
		Query: `
			SELECT book_title, list_price_amount, retail_price_amount
			FROM api
			WHERE list_price_amount > 0
			  AND ((list_price_amount - retail_price_amount) / list_price_amount) > 0.2`,
	},
	{
		Name:  AvgPagesByFormat,
		Label: "Avg Page Count: eBooks vs Physical",
		Query: `SELECT is_ebook, AVG(page_count)::float8 AS avg_pages FROM api GROUP BY is_ebook`,
	},
	{
		Name:  TopAuthors,
		Label: "Top 3 Authors by Book Count",
		Query: `SELECT book_authors, COUNT(*) AS count FROM api GROUP BY book_authors ORDER BY count DESC LIMIT 3`,
	},
	{
		Name:  ProlificAuthors,
		Label: "Publishers with >10 Books",
		Query: `SELECT book_authors, COUNT(*) AS count FROM api GROUP BY book_authors HAVING COUNT(*) > 10`,
	},
	{
		Name:  AvgPagesByCategory,
		Label: "Avg Page Count per Category",
		Query: `SELECT categories, AVG(page_count)::float8 AS avg_pages FROM api GROUP BY categories`,
	},
	{
		Name:  ManyAuthors,
		Label: "Books with >3 Authors",
		Query: `SELECT * FROM api WHERE LENGTH(book_authors) - LENGTH(REPLACE(book_authors, ',', '')) + 1 > 3`,
	},
	{
		Name:  AboveAverageRatings,
		Label: "Books with Ratings > Average",
		Query: `SELECT * FROM api WHERE ratings_count > (SELECT AVG(ratings_count) FROM api)`,
	},
	{
		Name:  SameAuthorYear,
		Label: "Same Author & Year (Multiple Books)",
		Query: `SELECT book_authors, year, COUNT(*) AS count FROM api GROUP BY book_authors, year HAVING COUNT(*) > 1`,
	},
	{
		Name:  MagicTitles,
		Label: "Books with Keyword 'magic' in Title",
		Query: `SELECT * FROM api WHERE book_title ILIKE '%magic%'`,
	},
	{
		Name:  PriciestYear,
		Label: "Year with Highest Avg Book Price",
		Query: `SELECT year, AVG(retail_price_amount)::float8 AS avg_price FROM api GROUP BY year ORDER BY avg_price DESC NULLS LAST LIMIT 1`,
	},
	{
		Name:        ConsecutiveYears,
		Label:       "Authors Published 3 Consecutive Years (Logic Needed)",
		Query:       `SELECT 'Not implemented: needs window function or richer logic' AS note`,
		Placeholder: true,
	},
	{
		Name:  SameAuthorYearPublisher,
		Label: "Same Author, Same Year, Different Publisher (Approximate)",
		Query: `SELECT book_authors, year, COUNT(*) AS count FROM api GROUP BY book_authors, year HAVING COUNT(*) > 1`,
	},
	{
		// An aggregate without GROUP BY yields one row even on an empty table.
		Name:  AvgPriceByFormat,
		Label: "Avg Retail Price: eBooks vs Physical",
		Query: `
			SELECT
				AVG(CASE WHEN is_ebook = TRUE THEN retail_price_amount END)::float8 AS avg_ebook_price,
				AVG(CASE WHEN is_ebook = FALSE THEN retail_price_amount END)::float8 AS avg_physical_price
			FROM api
			HAVING COUNT(*) > 0`,
	},
	{
		Name:  RatingOutliers,
		Label: "Rating Outliers (2 SD Away)",
		Query: `
			SELECT book_title, average_rating, ratings_count
			FROM api
			WHERE average_rating > (SELECT AVG(average_rating) + 2 * STDDEV_POP(average_rating) FROM api)
			   OR average_rating < (SELECT AVG(average_rating) - 2 * STDDEV_POP(average_rating) FROM api)`,
	},
	{
		Name:  TopRatedProlificAuthor,
		Label: "Top Publisher by Avg Rating (Min 10 Books)",
		Query: `
			SELECT book_authors, AVG(average_rating)::float8 AS avg_rating, COUNT(*) AS books
			FROM api
			GROUP BY book_authors
			HAVING COUNT(*) > 10
			ORDER BY avg_rating DESC NULLS LAST
			LIMIT 1`,
	},
}

var byName map[Name]Definition

func init() {
	byName = make(map[Name]Definition, len(definitions))
	for i := range definitions {
		definitions[i].Number = i + 1
		definitions[i].Query = strings.TrimSpace(definitions[i].Query)
		byName[definitions[i].Name] = definitions[i]
	}
}

// Catalog returns the reports in menu order.
func Catalog() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup finds a report by name or by its menu number ("16").
func Lookup(key string) (Definition, bool) {
	key = strings.TrimSpace(strings.ToLower(key))
	if d, ok := byName[Name(key)]; ok {
		return d, true
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(definitions) {
		return definitions[n-1], true
	}
	return Definition{}, false
}
