package logger

// LogRequest logs HTTP request information at a level matching the outcome
func LogRequest(method, url string, statusCode int, durationMs float64) {
	fields := map[string]interface{}{
		"method":      method,
		"url":         url,
		"status_code": statusCode,
		"duration_ms": durationMs,
	}

	switch {
	case statusCode >= 500:
		GetLogger().ErrorWithFields("HTTP request server error", fields)
	case statusCode >= 400:
		GetLogger().WarnWithFields("HTTP request client error", fields)
	default:
		GetLogger().DebugWithFields("HTTP request completed", fields)
	}
}

// LogMatchStored logs one committed match record
func LogMatchStored(player, matchID string, withTimeline bool) {
	GetLogger().InfoWithFields("Match stored", map[string]interface{}{
		"player":        player,
		"match_id":      matchID,
		"with_timeline": withTimeline,
	})
}

// LogMatchSkipped logs a match skipped by the dedupe check
func LogMatchSkipped(player, matchID string) {
	GetLogger().DebugWithFields("Match already stored, skipping", map[string]interface{}{
		"player":   player,
		"match_id": matchID,
	})
}

// LogRateLimit logs a rate limit pause
func LogRateLimit(endpoint string, waitSeconds float64) {
	GetLogger().WarnWithFields("Rate limit reached", map[string]interface{}{
		"endpoint":     endpoint,
		"wait_seconds": waitSeconds,
	})
}
