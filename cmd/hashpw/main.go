// cmd/hashpw/main.go
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/pkg/auth"
	"github.com/sirupsen/logrus"
)

// Prints a bcrypt hash usable as ADMIN_PASSWORD. The password is read from
// the first argument, or from stdin when none is given.
func main() {
	cost := flag.Int("cost", 12, "bcrypt cost")
	minLength := flag.Int("min-length", 8, "minimum password length")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: hashpw [-cost 12] [-min-length 8] [password]")
		flag.PrintDefaults()
	}
	flag.Parse()

	password := flag.Arg(0)
	if password == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			flag.Usage()
			os.Exit(2)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	pm := auth.NewPasswordManager(&config.Config{
		Security: config.SecurityConfig{BcryptCost: *cost, MinPasswordLength: *minLength},
	})

	hash, err := pm.HashPassword(password)
	if err != nil {
		logrus.WithError(err).Fatal("Error generating hash")
	}
	if err := pm.VerifyPassword(password, hash); err != nil {
		logrus.WithError(err).Fatal("Hash verification failed")
	}

	fmt.Println(hash)
}
