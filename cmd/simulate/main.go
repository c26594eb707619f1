package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/dosewise/medsafe/internal/timing"
)

// Workload generator: builds randomized medication lists from the embedded
// rule table plus invented names, and hammers the schedule and search
// endpoints of a running api-server.

type SimConfig struct {
	APIBaseURL    string
	Duration      time.Duration
	Workers       int
	ScheduleRatio float64
	SearchRatio   float64
	MaxListSize   int
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	ClientErr int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, status int, err error) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case err != nil || status >= 500:
		atomic.AddInt64(&om.Error, 1)
	case status >= 400:
		atomic.AddInt64(&om.ClientErr, 1)
	default:
		atomic.AddInt64(&om.Success, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]

	p50Idx := len(latencies) * 50 / 100
	if p50Idx >= len(latencies) {
		p50Idx = len(latencies) - 1
	}
	p50 = latencies[p50Idx]

	p95Idx := len(latencies) * 95 / 100
	if p95Idx >= len(latencies) {
		p95Idx = len(latencies) - 1
	}
	p95 = latencies[p95Idx]

	return avg, min, max, p50, p95
}

type Metrics struct {
	Schedule OperationMetrics
	Search   OperationMetrics
}

type Simulator struct {
	config  SimConfig
	names   []string
	client  *http.Client
	metrics Metrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("config: duration=%s workers=%d schedule=%.2f search=%.2f",
		cfg.Duration, cfg.Workers, cfg.ScheduleRatio, cfg.SearchRatio)

	gofakeit.Seed(time.Now().UnixNano())

	names := make([]string, 0, len(timing.DefaultTable))
	for _, e := range timing.DefaultTable {
		names = append(names, e.Key)
	}

	sim := &Simulator{
		config: cfg,
		names:  names,
		client: &http.Client{
			// A saturated rate limiter can legitimately hold a search for a
			// full window.
			Timeout: 90 * time.Second,
		},
	}

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL:    getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:      getDuration("SIM_DURATION", 30*time.Second),
		Workers:       getInt("SIM_WORKERS", 10),
		ScheduleRatio: getFloat("SIM_SCHEDULE_RATIO", 0.7),
		SearchRatio:   getFloat("SIM_SEARCH_RATIO", 0.3),
		MaxListSize:   getInt("SIM_MAX_LIST_SIZE", 8),
	}

	// Normalize ratios
	total := cfg.ScheduleRatio + cfg.SearchRatio
	if total > 0 {
		cfg.ScheduleRatio /= total
		cfg.SearchRatio /= total
	}

	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if cfg.MaxListSize <= 0 {
		return fmt.Errorf("SIM_MAX_LIST_SIZE must be > 0")
	}
	return nil
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				if rand.Float64() < s.config.ScheduleRatio {
					s.doSchedule(ctx)
				} else {
					s.doSearch(ctx)
				}
			}
		}()
	}
	wg.Wait()
}

var frequencies = []string{
	"once daily", "twice daily", "three times daily", "every morning",
	"bid", "tid", "as needed",
}

func (s *Simulator) randomMedications() []map[string]any {
	n := 1 + rand.Intn(s.config.MaxListSize)
	meds := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		name := s.names[rand.Intn(len(s.names))]
		if rand.Float64() < 0.15 {
			// A slice of requests carries names the knowledge base has never
			// heard of, like real user input does.
			name = strings.ToLower(gofakeit.LastName()) + "mab"
		}
		meds = append(meds, map[string]any{
			"name":      name,
			"dosage":    fmt.Sprintf("%dmg", 5*(1+rand.Intn(100))),
			"frequency": frequencies[rand.Intn(len(frequencies))],
		})
	}
	return meds
}

func (s *Simulator) doSchedule(ctx context.Context) {
	body, _ := json.Marshal(map[string]any{
		"medications": s.randomMedications(),
	})

	start := time.Now()
	status, err := s.post(ctx, "/schedule", body)
	s.metrics.Schedule.Record(time.Since(start), status, err)
}

func (s *Simulator) doSearch(ctx context.Context) {
	query := s.names[rand.Intn(len(s.names))]
	if rand.Float64() < 0.2 {
		// Misspell to exercise the suggestion path.
		query = query[:len(query)-1]
	}

	start := time.Now()
	status, err := s.get(ctx, "/drugs/search?q="+url.QueryEscape(query))
	s.metrics.Search.Record(time.Since(start), status, err)
}

func (s *Simulator) post(ctx context.Context, path string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIBaseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *Simulator) get(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.APIBaseURL+path, nil)
	if err != nil {
		return 0, err
	}
	return s.do(req)
}

func (s *Simulator) do(req *http.Request) (int, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func (s *Simulator) PrintReport() {
	fmt.Println()
	fmt.Println("=== Simulation Report ===")
	printOp("schedule", &s.metrics.Schedule)
	printOp("search", &s.metrics.Search)
}

func printOp(name string, om *OperationMetrics) {
	avg, min, max, p50, p95 := om.Stats()
	fmt.Printf("%-10s total=%d success=%d client_err=%d error=%d\n",
		name, om.Total, om.Success, om.ClientErr, om.Error)
	fmt.Printf("%-10s avg=%s min=%s max=%s p50=%s p95=%s\n",
		"", avg, min, max, p50, p95)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
