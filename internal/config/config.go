package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Page sizes for the listing operations.
	PostBatchSize    int
	ThreadBatchSize  int
	CommentBatchSize int

	// Distinct-reporter counts a post/comment must exceed before it is
	// hidden from listings.
	HidePostThreshold    int
	HideCommentThreshold int

	// RevokeSeriesOnMismatch deletes the whole remember-me series when a
	// redemption presents a stale token, treating the mismatch as theft.
	// Off by default: a stale token then only fails the one redemption.
	RevokeSeriesOnMismatch bool

	// BannedWords feed the default positivity filter.
	BannedWords []string

	// MaxSearchResults caps user search.
	MaxSearchResults int
}

// Load reads configuration from the environment, honouring a .env file in
// the working directory when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		PostBatchSize:          getEnvInt("POST_BATCH_SIZE", 10),
		ThreadBatchSize:        getEnvInt("THREAD_BATCH_SIZE", 10),
		CommentBatchSize:       getEnvInt("COMMENT_BATCH_SIZE", 10),
		HidePostThreshold:      getEnvInt("HIDE_POST_THRESHOLD", 5),
		HideCommentThreshold:   getEnvInt("HIDE_COMMENT_THRESHOLD", 5),
		RevokeSeriesOnMismatch: getEnvBool("REVOKE_SERIES_ON_MISMATCH", false),
		BannedWords:            getEnvList("BANNED_WORDS", []string{"negative"}),
		MaxSearchResults:       getEnvInt("MAX_SEARCH_RESULTS", 10),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvList(key string, fallback []string) []string {
	val := getEnv(key, "")
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
