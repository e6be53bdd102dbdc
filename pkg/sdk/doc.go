/*
Package sdk provides the submission client used to ship coverage series to a
Datadog-compatible series intake.

# Quick Start

	doc, err := report.ParseFile("coverage.json")
	if err != nil {
	    log.Fatal(err)
	}

	// Capture the run timestamp and tags once
	ts := time.Now().Unix()
	tags := metrics.RunTags{ProjectName: "api", BranchName: "main"}.Tags()
	series := metrics.WithTags(doc.Flatten(ts, "coverage"), tags)

	client, err := sdk.New(sdk.ClientConfig{
	    Site:   "https://api.datadoghq.com",
	    APIKey: os.Getenv("DD_API_KEY"),
	})
	if err != nil {
	    log.Fatal(err)
	}

	if _, err := client.Submit(context.Background(), series); err != nil {
	    log.Fatal(err)
	}

# Submission Contract

A Client makes exactly one submission:

	Pending → Succeeded
	Pending → Failed

All series of a run go out in a single POST to {site}/api/v1/series with the
credential in the DD-API-KEY header. The batch is never split, so the
endpoint either accepts everything or the run has failed. There is no retry:
the pipeline running the tool owns retry policy.

An empty batch is a successful no-op and does not contact the endpoint.

# Errors

  - transport.ErrTransport: connection failures, timeouts, cancellation,
    and 5xx answers
  - transport.ErrRejected: 4xx answers, typically an invalid API key (403)
    or a malformed payload (400)

Both are terminal. Use errors.Is to tell them apart and errors.As with
*transport.RejectedError to get the status code and response excerpt.

# Client Configuration

	client, err := sdk.New(sdk.ClientConfig{
	    Site:      "https://api.datadoghq.eu",  // Default: https://api.datadoghq.com
	    APIKey:    "secret-key",                // Required
	    Compress:  true,                        // gzip request bodies
	    MaxSeries: 5000,                        // Refuse larger batches before sending
	    Logger:    log.Default(),               // Progress lines, nil disables
	})

The HTTP timeout is fixed at 10 seconds.

# See Also

  - pkg/sdk/metrics for the series wire model and run tags
  - pkg/sdk/transport for the HTTP transport and error types
  - pkg/sdk/batch for the single-batch accumulator
*/
package sdk
