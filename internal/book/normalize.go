package book

import (
	"strings"

	"github.com/goccy/go-json"

	"bookscape/internal/platform/googlebooks"
)

const listSeparator = ", "

// Normalize maps one catalog volume to a Record. It never fails: missing
// source fields become nil or "".
func Normalize(item googlebooks.Volume, searchKey string) Record {
	info := item.Info()
	sale := item.Sale()
	modes := info.Modes()
	list := sale.List()
	retail := sale.Retail()

	return Record{
		BookID:              item.ID,
		SearchKey:           searchKey,
		Title:               info.Title,
		Subtitle:            info.Subtitle,
		Authors:             strings.Join(info.Authors, listSeparator),
		Description:         info.Description,
		IndustryIdentifiers: encodeIdentifiers(info.IndustryIdentifiers),
		TextReadingMode:     modes.Text,
		ImageReadingMode:    modes.Image,
		PageCount:           info.PageCount,
		Categories:          strings.Join(info.Categories, listSeparator),
		Language:            info.Language,
		ImageLink:           info.Thumbnail(),
		RatingsCount:        info.RatingsCount,
		AverageRating:       info.AverageRating,
		Country:             sale.Country,
		Saleability:         sale.Saleability,
		IsEbook:             sale.IsEbook,
		ListPriceAmount:     list.Amount,
		ListPriceCurrency:   list.CurrencyCode,
		RetailPriceAmount:   retail.Amount,
		RetailPriceCurrency: retail.CurrencyCode,
		BuyLink:             sale.BuyLink,
		Year:                yearOf(info.PublishedDate),
	}
}

// NormalizeAll maps every item with the same search key.
func NormalizeAll(items []googlebooks.Volume, searchKey string) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, Normalize(item, searchKey))
	}
	return out
}

// yearOf keeps the first four characters of the published date. Short or
// non-numeric values pass through unchanged.
func yearOf(published *string) string {
	if published == nil {
		return ""
	}
	return Truncate(*published, 4)
}

// Truncate returns the first n runes of s.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func encodeIdentifiers(ids []googlebooks.IndustryIdentifier) *string {
	if ids == nil {
		return nil
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}
