// Package main implements a mock product catalog for local development.
// It generates a deterministic product list and serves it with the same
// limit/skip paging and response envelope as the public catalog API.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"time"
)

const defaultLimit = 30

type product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

type productsResponse struct {
	Products []product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

var (
	categories = []string{"beauty", "fragrances", "furniture", "groceries", "laptops"}
	brands     = []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Soylent"}
)

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	count := flag.Int("products", 194, "number of products in the catalog")
	failEvery := flag.Int("fail-every", 0, "answer every Nth products request with 503 (0 disables)")
	latency := flag.Duration("latency", 0, "delay added to every products response")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	products := generateProducts(*count)
	logger.Info("generated catalog", "products", len(products))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", productsHandler(logger, products, *failEvery, *latency))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock catalog server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// generateProducts builds n products with ids 1..n. Output is stable for a
// given n.
func generateProducts(n int) []product {
	products := make([]product, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		category := categories[i%len(categories)]
		products = append(products, product{
			ID:                 i,
			Title:              fmt.Sprintf("%s item %d", category, i),
			Description:        fmt.Sprintf("Generated %s product number %d.", category, i),
			Price:              float64(5+(i*37)%500) - 0.01,
			DiscountPercentage: math.Round(float64((i*7)%2000)) / 100,
			Rating:             math.Round((2.5+float64(i%26)/10)*100) / 100,
			Stock:              (i * 13) % 120,
			Brand:              brands[i%len(brands)],
			Category:           category,
			Thumbnail:          fmt.Sprintf("https://picsum.photos/seed/%d/300/200", i),
			Images:             []string{fmt.Sprintf("https://picsum.photos/seed/%d/800/600", i)},
		})
	}
	return products
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func productsHandler(
	logger *slog.Logger,
	products []product,
	failEvery int,
	latency time.Duration,
) http.HandlerFunc {
	var requests atomic.Int64
	return func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		if failEvery > 0 && n%int64(failEvery) == 0 {
			logger.Warn("injecting failure", "request", n)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "catalog temporarily unavailable"})
			return
		}
		if latency > 0 {
			time.Sleep(latency)
		}

		limit := defaultLimit
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v >= 0 {
			limit = v
		}
		skip := 0
		if v, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && v >= 0 {
			skip = v
		}

		// limit=0 returns everything from skip onward.
		page := []product{}
		if skip < len(products) {
			end := len(products)
			if limit > 0 {
				end = min(skip+limit, len(products))
			}
			page = products[skip:end]
		}

		writeJSON(w, http.StatusOK, productsResponse{
			Products: page,
			Total:    len(products),
			Skip:     skip,
			Limit:    len(page),
		})
		logger.Info("products", "skip", skip, "limit", limit, "returned", len(page))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
