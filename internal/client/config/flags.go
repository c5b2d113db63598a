package config

import (
	"flag"
	"os"
	"time"

	"github.com/mlevkov/authgate/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the authentication service
//	-s string   path to the client state database
//	-w int      automatic sign-out delay in seconds
//
// Args are filtered through flagx.FilterArgs so flags owned by other
// packages (like -c/-config) pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the authentication service")
	fs.StringVar(&cfg.DatabasePath, "s", cfg.DatabasePath, "path to the client state database")
	signOutDelay := fs.Int("w", int(cfg.SignOutDelay.Seconds()), "automatic sign-out delay (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SignOutDelay = time.Duration(*signOutDelay) * time.Second
}
