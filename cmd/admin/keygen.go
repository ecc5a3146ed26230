package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"tourneypoker-server/internal/jwt"
)

// KeygenCmd writes a new key pair
type KeygenCmd struct {
	Dir   string `default:"." help:"Directory to write private.key and public.pem to"`
	Force bool   `short:"f" help:"Overwrite existing keys without asking"`
}

// Run generates and writes the keys
func (k *KeygenCmd) Run() error {
	privatePath := filepath.Join(k.Dir, "private.key")
	publicPath := filepath.Join(k.Dir, "public.pem")

	if !k.Force && (exists(privatePath) || exists(publicPath)) {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("keys already exist, use --force to overwrite them")
		}

		answer, err := getInput("Keys already exist, overwrite them (y/N)")
		if err != nil {
			return err
		}

		if answer == "" || strings.ToLower(answer)[0] != 'y' {
			return errors.New("aborted")
		}
	}

	privatePEM, publicPEM, err := jwt.GenerateKeyPair()
	if err != nil {
		return err
	}

	if err := os.WriteFile(privatePath, privatePEM, 0600); err != nil {
		return err
	}

	if err := os.WriteFile(publicPath, publicPEM, 0644); err != nil {
		return err
	}

	fmt.Printf("Wrote %s and %s\n", privatePath, publicPath)
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
