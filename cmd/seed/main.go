// Command seed fills the api table with synthetic books for report development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"bookscape/internal/book"
	"bookscape/internal/config"
	"bookscape/internal/logger"
	"bookscape/internal/store"
)

const batchSize = 1000

func main() {
	count := flag.Int("count", 10000, "number of books to generate")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	lg, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()
	conn, err := store.Open(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("open database (%s): %v", cfg.RedactedDSN(), err)
	}
	defer conn.Close()

	repo := book.NewPostgresRepo(conn.SQL, cfg.DBTimeout, lg)
	records := generateRecords(rand.New(rand.NewSource(*seed)), *count)

	inserted := 0
	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))
		res, err := repo.UpsertBatch(ctx, records[start:end])
		if err != nil {
			log.Fatalf("insert batch at %d: %v", start, err)
		}
		inserted += res.Inserted
		lg.Info("seed batch stored", logger.Int("inserted", inserted), logger.Int("total", len(records)))
	}

	total, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("count books: %v", err)
	}
	lg.Info("seed completed", logger.Int("inserted", inserted), logger.Int("table_total", total))
}

var (
	categories = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	languages  = []string{"en", "es", "fr", "de", "it", "pt", "zh", "ja"}
	authors    = []string{"Ursula K. Le Guin", "Terry Pratchett", "Mary Beard", "Carl Sagan", "Octavia E. Butler", "Umberto Eco", "Hilary Mantel", "Italo Calvino"}
	words      = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Magic", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
)

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.Intn(len(xs))]
}

// generateRecords builds n deterministic records keyed seed-<i>.
func generateRecords(rng *rand.Rand, n int) []book.Record {
	out := make([]book.Record, n)
	for i := range out {
		year := 1950 + rng.Intn(75)
		pages := 100 + rng.Intn(800)
		ratings := rng.Intn(500)
		rating := float64(1+rng.Intn(9)) / 2
		list := float64(500+rng.Intn(4500)) / 100
		retail := list * (0.6 + rng.Float64()*0.4)
		ebook := rng.Intn(2) == 0
		currency := "USD"

		nAuthors := 1 + rng.Intn(4)
		names := make([]string, nAuthors)
		for j := range names {
			names[j] = pick(rng, authors)
		}

		title := fmt.Sprintf("%s of %s", pick(rng, words), pick(rng, words))
		out[i] = book.Record{
			BookID:              fmt.Sprintf("seed-%06d", i+1),
			SearchKey:           "seed",
			Title:               &title,
			Authors:             joinNames(names),
			PageCount:           &pages,
			Categories:          pick(rng, categories),
			Language:            ptr(pick(rng, languages)),
			RatingsCount:        &ratings,
			AverageRating:       &rating,
			IsEbook:             &ebook,
			ListPriceAmount:     &list,
			ListPriceCurrency:   &currency,
			RetailPriceAmount:   &retail,
			RetailPriceCurrency: &currency,
			Year:                fmt.Sprintf("%d", year),
		}
	}
	return out
}

func joinNames(names []string) string {
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}

func ptr[T any](v T) *T { return &v }
