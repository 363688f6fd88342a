package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
)

// Benchmarks run against a live server. AUTOCRUD_BENCH_URL is the server
// base URL, AUTOCRUD_BENCH_TOKEN a bearer token allowed to read and create
// records of AUTOCRUD_BENCH_ROUTE (default "products").
func benchTarget(b *testing.B) (baseURL, token, route string) {
	baseURL = os.Getenv("AUTOCRUD_BENCH_URL")
	token = os.Getenv("AUTOCRUD_BENCH_TOKEN")
	if baseURL == "" || token == "" {
		b.Skip("Set AUTOCRUD_BENCH_URL and AUTOCRUD_BENCH_TOKEN to run benchmarks")
	}
	route = os.Getenv("AUTOCRUD_BENCH_ROUTE")
	if route == "" {
		route = "products"
	}
	return baseURL, token, route
}

func do(b *testing.B, r *http.Request, token string) {
	r.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		b.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		b.Fatalf("%s %s: status %d", r.Method, r.URL, resp.StatusCode)
	}
}

func BenchmarkRecordsHandler(b *testing.B) {
	baseURL, token, route := benchTarget(b)
	collection := fmt.Sprintf("%s/api/%s", baseURL, route)

	b.Run("POST /api/{model}", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			body, _ := json.Marshal(map[string]interface{}{"name": fmt.Sprintf("bench-%d", i)})
			r, _ := http.NewRequest("POST", collection, bytes.NewReader(body))
			r.Header.Set("Content-Type", "application/json")
			do(b, r, token)
		}
	})

	b.Run("GET /api/{model}", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			r, _ := http.NewRequest("GET", collection+"?limit=50", nil)
			do(b, r, token)
		}
	})
}

func BenchmarkRecordsHandlerParallel(b *testing.B) {
	baseURL, token, route := benchTarget(b)
	collection := fmt.Sprintf("%s/api/%s?limit=50", baseURL, route)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r, _ := http.NewRequest("GET", collection, nil)
			r.Header.Set("Authorization", "Bearer "+token)
			resp, err := http.DefaultClient.Do(r)
			if err != nil {
				b.Error(err)
				return
			}
			_ = resp.Body.Close()
		}
	})
}
