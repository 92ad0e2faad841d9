// Command hash-password prints bcrypt hashes for passwords read from stdin,
// one per line, for seeding users directly into the database.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost")
	flag.Parse()

	if err := hashLines(os.Stdin, os.Stdout, auth.NewBcryptVerifier(*cost)); err != nil {
		log.Fatalf("hash-password: %v", err)
	}
}

// hashLines writes one hash per input line. Lines that fail password
// validation are reported and skipped.
func hashLines(in io.Reader, out io.Writer, hasher auth.PasswordHasher) error {
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		password := scanner.Text()
		if password == "" {
			continue
		}
		if n := len(password); n < domain.MinPasswordLength || n > domain.MaxPasswordLength {
			fmt.Fprintf(os.Stderr, "line %d: password must be %d to %d bytes, skipped\n",
				line, domain.MinPasswordLength, domain.MaxPasswordLength)
			continue
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
	}
	return scanner.Err()
}
