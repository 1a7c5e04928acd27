// Command import loads a JSON array of contacts into the configured store.
//
//	import [-file seed-data.json]
//
// Entries go through the same trimming, truncation and phone checks as public
// submissions, but keep their is_verified and upvotes values.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/AbhishekS200607/quickaid/internal/config"
	"github.com/AbhishekS200607/quickaid/internal/logging"
	"github.com/AbhishekS200607/quickaid/internal/model"
	"github.com/AbhishekS200607/quickaid/internal/repository"
	"github.com/AbhishekS200607/quickaid/internal/service"

	"github.com/sirupsen/logrus"
)

// seedEntry is one element of the seed file
type seedEntry struct {
	model.SubmitContactRequest
	IsVerified bool `json:"is_verified"`
	Upvotes    int  `json:"upvotes"`
}

func main() {
	file := flag.String("file", "seed-data.json", "path to the seed JSON array")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Log.WithError(err).Fatal("failed to load config")
	}
	logging.Setup(cfg.LogLevel)
	if err := cfg.ValidateStore(); err != nil {
		logging.Log.WithError(err).Fatal("invalid store configuration")
	}

	f, err := os.Open(*file)
	if err != nil {
		logging.Log.WithError(err).WithField("file", *file).Fatal("open seed file failed")
	}
	defer f.Close()

	entries, err := loadSeed(f)
	if err != nil {
		logging.Log.WithError(err).WithField("file", *file).Fatal("read seed file failed")
	}

	ctx := context.Background()
	store, err := config.OpenStore(ctx, cfg)
	if err != nil {
		logging.Log.WithError(err).Fatal("failed to open store")
	}
	defer store.Close()

	imported, err := importContacts(ctx, store.Contacts, entries)
	if err != nil {
		store.Close()
		logging.Log.WithError(err).WithFields(logrus.Fields{"imported": imported, "total": len(entries)}).Fatal("import stopped")
	}
	logging.Log.WithField("imported", imported).Info("import completed")
}

func loadSeed(r io.Reader) ([]seedEntry, error) {
	var entries []seedEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return entries, nil
}

// importContacts inserts entries in order and stops at the first failure,
// returning how many were stored
func importContacts(ctx context.Context, repo repository.ContactRepository, entries []seedEntry) (int, error) {
	for i, entry := range entries {
		contact, err := service.SanitizeSubmission(entry.SubmitContactRequest)
		if err != nil {
			return i, fmt.Errorf("entry %d (%q): %w", i, entry.Name, err)
		}
		contact.IsVerified = entry.IsVerified
		contact.Upvotes = max(entry.Upvotes, 0)

		if err := repo.Create(ctx, contact); err != nil {
			return i, fmt.Errorf("entry %d (%q): %w", i, entry.Name, err)
		}
	}
	return len(entries), nil
}
