// Command hash prints a bcrypt hash for seeding vendor and customer rows by
// hand.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/hash <password> [cost]")
		os.Exit(2)
	}

	cost := bcrypt.DefaultCost
	if len(os.Args) > 2 {
		if _, err := fmt.Sscanf(os.Args[2], "%d", &cost); err != nil {
			fmt.Fprintf(os.Stderr, "invalid cost %q\n", os.Args[2])
			os.Exit(2)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}
