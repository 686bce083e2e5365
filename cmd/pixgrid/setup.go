package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mmcdole/pixgrid/internal/adapter"
	"github.com/mmcdole/pixgrid/internal/adapter/source"
	"github.com/mmcdole/pixgrid/internal/domain"
	"github.com/mmcdole/pixgrid/internal/tui/styles"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// verifyTimeout bounds the key check request
const verifyTimeout = 15 * time.Second

// runSetupFlow asks for an API key, checks it against the API and saves it
func runSetupFlow(cfg *adapter.Config, v *viper.Viper, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to pixgrid!")
	fmt.Println()
	fmt.Println("pixgrid needs a Pixabay API key. Get one for free at https://pixabay.com/api/docs/")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		key, err := promptKey(reader)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		candidate := *cfg
		candidate.API.Key = key

		if err := verifyKeyWithSpinner(&candidate, logger); err != nil {
			fmt.Printf("✗ %v\n", err)
			if errors.Is(err, domain.ErrAuthFailed) {
				fmt.Println("Please check the key and try again.")
				fmt.Println()
				continue
			}
			return err
		}

		cfg.API.Key = key
		break
	}

	path, err := adapter.SaveAPIKey(v, cfg.API.Key)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	logger.Info("api key saved", "path", path)
	fmt.Printf("✓ Key saved to %s\n", path)
	fmt.Println()
	return nil
}

// promptKey reads the key without echo when stdin is a terminal
func promptKey(reader *bufio.Reader) (string, error) {
	fmt.Print("Enter your Pixabay API key: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// verifyKeyWithSpinner runs a one-result search with a visual spinner
func verifyKeyWithSpinner(cfg *adapter.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	client, err := source.NewClient(cfg, logger)
	if err != nil {
		return err
	}

	resultCh := make(chan error, 1)
	go func() {
		params := cfg.SearchDefaults()
		params.PerPage = 3
		_, err := client.Search(ctx, params, 1)
		resultCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ API key accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("key check timed out")
		}
	}
}
