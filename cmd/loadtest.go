package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// LoadTestConfig holds configuration for load testing
type LoadTestConfig struct {
	BaseURL         string
	NumStudents     int
	NumAssignments  int
	ConcurrentUsers int
	RequestsPerUser int
}

// LoadTestResult holds the results of load testing
type LoadTestResult struct {
	TotalRequests     int
	SuccessfulReqs    int
	RejectedReqs      int
	FailedReqs        int
	AvgResponseTimeMs float64
	MaxResponseTimeMs int64
	MinResponseTimeMs int64
	ThroughputRPS     float64
	ErrorsByType      map[string]int
}

// LoadTester drives concurrent registration attempts against the API. Most
// generated ids do not exist, so the run measures how fast the validators
// reject inadmissible candidates under contention.
type LoadTester struct {
	config      LoadTestConfig
	client      *http.Client
	students    []uuid.UUID
	assignments []uuid.UUID
	gradeID     uuid.UUID
	sectionID   uuid.UUID
	results     LoadTestResult
	mutex       sync.Mutex
	startTime   time.Time
}

func NewLoadTester(config LoadTestConfig) *LoadTester {
	return &LoadTester{
		config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		students:    make([]uuid.UUID, config.NumStudents),
		assignments: make([]uuid.UUID, config.NumAssignments),
		results: LoadTestResult{
			ErrorsByType: make(map[string]int),
		},
	}
}

// Initialize sets up test data
func (lt *LoadTester) Initialize() {
	fmt.Println("Initializing load test data...")

	for i := 0; i < lt.config.NumStudents; i++ {
		lt.students[i] = uuid.New()
	}
	for i := 0; i < lt.config.NumAssignments; i++ {
		lt.assignments[i] = uuid.New()
	}
	lt.gradeID = uuid.New()
	lt.sectionID = uuid.New()

	fmt.Printf("Generated %d students and %d assignments\n", len(lt.students), len(lt.assignments))
}

// RunLoadTest executes the load test
func (lt *LoadTester) RunLoadTest() {
	fmt.Printf("Starting load test with %d concurrent users...\n", lt.config.ConcurrentUsers)

	lt.startTime = time.Now()
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, lt.config.ConcurrentUsers)
	totalRequests := lt.config.ConcurrentUsers * lt.config.RequestsPerUser

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)

		go func(requestID int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			lt.attemptRegistration(requestID)
		}(i)

		time.Sleep(10 * time.Millisecond)
	}

	wg.Wait()

	lt.calculateMetrics()
	lt.printResults()
}

func (lt *LoadTester) attemptRegistration(requestID int) {
	startTime := time.Now()

	numAssignments := 1 + (requestID % 3)
	assignmentIDs := make([]uuid.UUID, numAssignments)
	for i := 0; i < numAssignments; i++ {
		assignmentIDs[i] = lt.assignments[(requestID+i)%len(lt.assignments)]
	}

	reqBody := map[string]interface{}{
		"student_id":     lt.students[requestID%len(lt.students)],
		"grade_id":       lt.gradeID,
		"section_id":     lt.sectionID,
		"assignment_ids": assignmentIDs,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		lt.recordError("json_marshal")
		return
	}

	url := fmt.Sprintf("%s/api/v1/registrations", lt.config.BaseURL)
	resp, err := lt.client.Post(url, "application/json", bytes.NewBuffer(jsonData))

	responseTime := time.Since(startTime)

	if err != nil {
		lt.recordError("http_request")
		return
	}
	defer resp.Body.Close()

	lt.recordResponse(resp.StatusCode, responseTime)
}

func (lt *LoadTester) recordResponse(statusCode int, responseTime time.Duration) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	responseTimeMs := responseTime.Milliseconds()

	if lt.results.MaxResponseTimeMs < responseTimeMs {
		lt.results.MaxResponseTimeMs = responseTimeMs
	}
	if lt.results.MinResponseTimeMs == 0 || lt.results.MinResponseTimeMs > responseTimeMs {
		lt.results.MinResponseTimeMs = responseTimeMs
	}

	currentAvg := lt.results.AvgResponseTimeMs
	currentCount := float64(lt.results.TotalRequests)
	lt.results.AvgResponseTimeMs = (currentAvg*(currentCount-1) + float64(responseTimeMs)) / currentCount

	switch {
	case statusCode >= 200 && statusCode < 300:
		lt.results.SuccessfulReqs++
	case statusCode == 404 || statusCode == 409:
		// The engine rejected the candidate, which is the expected outcome
		// for synthetic ids.
		lt.results.RejectedReqs++
	default:
		lt.results.FailedReqs++
		lt.results.ErrorsByType[fmt.Sprintf("http_%d", statusCode)]++
	}
}

func (lt *LoadTester) recordError(errorType string) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	lt.results.FailedReqs++
	lt.results.ErrorsByType[errorType]++
}

func (lt *LoadTester) calculateMetrics() {
	totalDuration := time.Since(lt.startTime)
	lt.results.ThroughputRPS = float64(lt.results.TotalRequests) / totalDuration.Seconds()
}

func (lt *LoadTester) printResults() {
	fmt.Println("\n" + strings.Repeat("=", 80))

	fmt.Printf("Test Configuration:\n")
	fmt.Printf("  - Concurrent Users: %d\n", lt.config.ConcurrentUsers)
	fmt.Printf("  - Requests per User: %d\n", lt.config.RequestsPerUser)
	fmt.Printf("  - Total Students: %d\n", lt.config.NumStudents)
	fmt.Printf("  - Total Assignments: %d\n", lt.config.NumAssignments)

	fmt.Printf("\nOverall Performance:\n")
	fmt.Printf("  - Total Requests: %d\n", lt.results.TotalRequests)
	fmt.Printf("  - Successful: %d (%.2f%%)\n",
		lt.results.SuccessfulReqs,
		float64(lt.results.SuccessfulReqs)/float64(lt.results.TotalRequests)*100)
	fmt.Printf("  - Rejected by validation: %d (%.2f%%)\n",
		lt.results.RejectedReqs,
		float64(lt.results.RejectedReqs)/float64(lt.results.TotalRequests)*100)
	fmt.Printf("  - Failed: %d (%.2f%%)\n",
		lt.results.FailedReqs,
		float64(lt.results.FailedReqs)/float64(lt.results.TotalRequests)*100)

	fmt.Printf("\nResponse Time Metrics:\n")
	fmt.Printf("  - Average: %.2f ms\n", lt.results.AvgResponseTimeMs)
	fmt.Printf("  - Minimum: %d ms\n", lt.results.MinResponseTimeMs)
	fmt.Printf("  - Maximum: %d ms\n", lt.results.MaxResponseTimeMs)

	fmt.Printf("\nThroughput:\n")
	fmt.Printf("  - Requests per Second: %.2f\n", lt.results.ThroughputRPS)

	if len(lt.results.ErrorsByType) > 0 {
		fmt.Printf("\nError Breakdown:\n")
		for errorType, count := range lt.results.ErrorsByType {
			fmt.Printf("  - %s: %d\n", errorType, count)
		}
	}
}

var loadtestCmd = &cobra.Command{
	Use:   "loadtest",
	Short: "Run load tests against the registration API",
	Long: `Run load tests against the registration endpoint.
This includes:
- Concurrent user simulation
- Validation throughput under contention
- Response time metrics`,
	Run: func(cmd *cobra.Command, args []string) {
		runLoadTest()
	},
}

var (
	baseURL         string
	numStudents     int
	numAssignments  int
	concurrentUsers int
	requestsPerUser int
)

func init() {
	rootCmd.AddCommand(loadtestCmd)

	loadtestCmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the API")
	loadtestCmd.Flags().IntVar(&numStudents, "students", 1000, "Number of students to simulate")
	loadtestCmd.Flags().IntVar(&numAssignments, "assignments", 50, "Number of assignments to spread requests over")
	loadtestCmd.Flags().IntVar(&concurrentUsers, "concurrent", 100, "Number of concurrent users")
	loadtestCmd.Flags().IntVar(&requestsPerUser, "requests", 10, "Number of requests per user")
}

func runLoadTest() {
	config := LoadTestConfig{
		BaseURL:         baseURL,
		NumStudents:     numStudents,
		NumAssignments:  numAssignments,
		ConcurrentUsers: concurrentUsers,
		RequestsPerUser: requestsPerUser,
	}

	loadTester := NewLoadTester(config)
	loadTester.Initialize()

	fmt.Println("School API Registration Load Test")
	fmt.Println("=================================")

	loadTester.RunLoadTest()
}
