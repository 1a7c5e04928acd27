// Command hashpw prints a bcrypt hash for the admin password.
//
//	hashpw <password>
//	echo -n <password> | hashpw
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AbhishekS200607/quickaid/internal/utils"
)

func main() {
	if err := run(os.Stdout, os.Stdin, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, stdin io.Reader, args []string) error {
	password, err := readPassword(stdin, args)
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Hash:", hash)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add this to your .env file:")
	fmt.Fprintf(w, "ADMIN_PASSWORD_HASH=%s\n", hash)
	return nil
}

func readPassword(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password required")
	}
	return password, nil
}
