/*
Package resilience provides a circuit breaker for calls to remote content
sources.

A remote catalog that keeps failing is skipped for Timeout instead of
stalling every reload behind retries and fetch timeouts.

# Usage

	breaker := resilience.New("catalog", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
	})

	entries, err := resilience.Do(breaker, func() ([]Entry, error) {
		return fetch(ctx)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                          Open
*/
package resilience
