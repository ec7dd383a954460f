package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

var (
	// Default allowed origins for local development (the static frontend is
	// usually served by a dev server or straight from disk).
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5500",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

// OpenListings reports whether unauthenticated access to the user directory
// and the space listing is allowed. Off by default; the open variant only
// exists for frontends that have not wired auth yet. Authenticated callers
// get owner-scoped rows either way.
func OpenListings() bool {
	return strings.EqualFold(os.Getenv("OPEN_LISTINGS"), "true")
}
