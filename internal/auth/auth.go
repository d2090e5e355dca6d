// Package auth wires the OAuth providers used for staff sign-in. Client
// users normally come in through the seeded email login instead.
package auth

import (
	"os"

	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/google"
)

// InitGothProviders registers the configured OAuth providers with goth.
// Providers without credentials in the environment are skipped.
func InitGothProviders() {
	var providers []goth.Provider

	if key := os.Getenv("GOOGLE_CLIENT_ID"); key != "" {
		providers = append(providers, google.New(
			key,
			os.Getenv("GOOGLE_CLIENT_SECRET"),
			os.Getenv("GOOGLE_CALLBACK_URL"),
		))
	}

	if len(providers) > 0 {
		goth.UseProviders(providers...)
	}
}
