// Command portfolio serves the portfolio site.
//
//	portfolio                      serve with configuration from the environment
//	portfolio serve --port 9000    same, overriding a setting
//	portfolio hash-password        print a bcrypt hash for ADMIN_PASSWORD_HASH
//
// Configuration is read from environment variables, optionally loaded from
// a .env file; see internal/config for the full list.
package main

import (
	"fmt"
	"os"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	app := newCLIApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
