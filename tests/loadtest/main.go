package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	numWorkers       = 50
	testDuration     = 10 * time.Second
	numUsers         = 100
	numAffirmations  = 200
	defaultTargetURL = "http://127.0.0.1:8080"
)

var categories = []string{"Autoestima", "Amor", "Gratidão", "Ansiedade", "Foco"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type session struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type affirmation struct {
	ID string `json:"id"`
}

var (
	baseURL      string
	sessions     []session
	affirmations []string
)

func main() {
	baseURL = os.Getenv("GENTIL_LOADTEST_URL")
	if baseURL == "" {
		baseURL = defaultTargetURL
	}

	fmt.Println("=== Gentil Load Test ===")
	fmt.Printf("Target: %s | Workers: %d | Duration: %s\n", baseURL, numWorkers, testDuration)
	fmt.Printf("Users: %d | Affirmations: %d\n\n", numUsers, numAffirmations)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			drain(resp)
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Seeding users and affirmations ---")
	if err := seed(); err != nil {
		fmt.Printf("FAILED: %s\n", err)
		return
	}
	fmt.Printf("Seeded %d users and %d affirmations\n", len(sessions), len(affirmations))

	fmt.Println("\n--- Phase 2: Daily use (activity, reads, favorites) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.30:
			return doRecordActivity(rng)
		case r < 0.60:
			return doRecordRead(rng)
		case r < 0.80:
			return doToggleFavorite(rng)
		default:
			return doListAffirmations(rng)
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy (lists, streak, dashboard) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doListAffirmations(rng)
		case r < 0.60:
			return doGetStreak(rng)
		case r < 0.80:
			return doDashboard(rng)
		case r < 0.90:
			return doPreview(rng)
		default:
			return doRecordActivity(rng)
		}
	})
}

func seed() error {
	runID := time.Now().UnixNano()
	for i := 0; i < numUsers; i++ {
		body := map[string]string{
			"email":           fmt.Sprintf("load%d_%d@example.com", runID, i),
			"password":        "secret1",
			"confirmPassword": "secret1",
		}
		var s session
		if err := postJSON("/auth/register", "", body, http.StatusCreated, &s); err != nil {
			return fmt.Errorf("register user %d: %w", i, err)
		}
		sessions = append(sessions, s)
	}

	for i := 0; i < numAffirmations; i++ {
		body := map[string]string{
			"texto":     fmt.Sprintf("Afirmação de carga %d", i),
			"categoria": categories[i%len(categories)],
			"linguagem": "pt",
		}
		var a affirmation
		if err := postJSON("/affirmations", sessions[0].Token, body, http.StatusCreated, &a); err != nil {
			return fmt.Errorf("create affirmation %d: %w", i, err)
		}
		affirmations = append(affirmations, a.ID)
	}
	return nil
}

func postJSON(path, token string, body any, want int, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 92))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-26s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		fmt.Println("  No requests completed")
		return
	}
	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 92))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

func do(endpoint, method, path, token string, body any, ok int) result {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	drain(resp)
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != ok}
}

func doRecordActivity(rng *rand.Rand) result {
	return do("POST /streak/activity", http.MethodPost, "/streak/activity", pick(rng, sessions).Token, nil, http.StatusOK)
}

func doRecordRead(rng *rand.Rand) result {
	body := map[string]string{"affirmation_id": pick(rng, affirmations)}
	return do("POST /affirmations/read", http.MethodPost, "/affirmations/read", pick(rng, sessions).Token, body, http.StatusNoContent)
}

func doToggleFavorite(rng *rand.Rand) result {
	body := map[string]string{"affirmation_id": pick(rng, affirmations)}
	return do("POST /favorites", http.MethodPost, "/favorites", pick(rng, sessions).Token, body, http.StatusOK)
}

func doListAffirmations(rng *rand.Rand) result {
	path := "/affirmations"
	if rng.Float64() < 0.5 {
		path += "?category=" + pick(rng, categories)
	}
	return do("GET /affirmations", http.MethodGet, path, "", nil, http.StatusOK)
}

func doGetStreak(rng *rand.Rand) result {
	return do("GET /streak", http.MethodGet, "/streak", pick(rng, sessions).Token, nil, http.StatusOK)
}

func doDashboard(rng *rand.Rand) result {
	return do("GET /dashboard", http.MethodGet, "/dashboard", pick(rng, sessions).Token, nil, http.StatusOK)
}

func doPreview(rng *rand.Rand) result {
	return do("GET /reminders/preview", http.MethodGet, "/reminders/preview", pick(rng, sessions).Token, nil, http.StatusOK)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
