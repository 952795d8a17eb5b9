// Package tuteliq provides the official Go SDK for the Tuteliq Child Safety API.
//
// Tuteliq analyzes text, audio, images, and conversations for risks to minors:
// bullying, grooming, unsafe content, and emotional distress. This SDK provides
// a simple and idiomatic Go interface for integrating Tuteliq's detection
// capabilities into your applications, along with reporting, webhooks, usage
// tracking, and GDPR tooling.
//
// # Quick Start
//
// To get started, you'll need a Tuteliq API key from https://tuteliq.ai.
//
//	import "github.com/Tuteliq/tuteliq-go"
//
//	// Create a client
//	client, err := tuteliq.New(tuteliq.WithAPIKey("your-api-key"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Analyze a message
//	result, err := client.AnalyzeBullying(context.Background(), &tuteliq.TextAnalysisRequest{
//		Text:     "message to analyze",
//		ChildAge: 12,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if result.Detected {
//		fmt.Println("Flagged:", result.RiskLevel, result.Categories)
//	}
//
// # Analysis Methods
//
// Each detector has a dedicated method:
//
//   - AnalyzeBullying, AnalyzeBullyingBatch, AnalyzeBullyingAudio
//   - AnalyzeGrooming, AnalyzeConversation
//   - AnalyzeUnsafeContent, AnalyzeImage
//   - AnalyzeEmotion, AnalyzeEmotionAudio
//   - Analyze runs every detector in one call
//
// # Error Handling and Retries
//
// All API failures are returned as *APIError. Check the failure class with
// errors.Is against the kind sentinels, or inspect the error directly:
//
//	result, err := client.AnalyzeBullying(ctx, req)
//	if err != nil {
//		if errors.Is(err, tuteliq.ErrRateLimited) {
//			// back off and retry later
//		}
//		var apiErr *tuteliq.APIError
//		if errors.As(err, &apiErr) {
//			fmt.Println(apiErr.Kind, apiErr.StatusCode, apiErr.Suggestion)
//		}
//	}
//
// Transient failures (429, 5xx, timeouts, connection errors) are retried
// automatically with exponential backoff. Customize or disable retries:
//
//	client, err := tuteliq.New(
//		tuteliq.WithAPIKey("your-api-key"),
//		tuteliq.WithMaxRetries(5),
//		tuteliq.WithRetryDelay(time.Second),
//	)
//
// # Caching
//
// GET responses can be cached in memory for a fixed TTL:
//
//	client, err := tuteliq.New(
//		tuteliq.WithAPIKey("your-api-key"),
//		tuteliq.WithCacheTTL(time.Minute),
//	)
//
// # Rate Limit and Usage Tracking
//
// The client records rate-limit and monthly-usage headers from every
// response. Read the latest snapshot at any time:
//
//	if rl, ok := client.RateLimit(); ok {
//		fmt.Println("remaining:", rl.Remaining, "resets:", rl.Reset)
//	}
//
// # Webhooks
//
// Register webhook endpoints with CreateWebhook and verify incoming
// deliveries in your handler:
//
//	event, err := tuteliq.ParseWebhookEvent(body, r.Header.Get("X-Tuteliq-Signature"), secret)
//
// # Timeouts
//
// Configure request timeouts as needed:
//
//	client, err := tuteliq.New(
//		tuteliq.WithAPIKey("your-api-key"),
//		tuteliq.WithTimeout(60 * time.Second),
//	)
//
// Per-call deadlines and cancellation are honored through context.Context.
//
// For more information and examples, visit: https://docs.tuteliq.ai
package tuteliq
