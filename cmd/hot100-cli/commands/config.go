package commands

import (
	"database/sql"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"hot100-backend/lib/configutil"
	"hot100-backend/lib/serviceutil"
	"hot100-backend/services/hot100"
	hot100db "hot100-backend/services/hot100/db"
)

const defaultOutDir = "data/billboard_hot100"

type Config struct {
	StartYear             int    `json:"start_year"`
	EndYear               int    `json:"end_year"`
	OutDir                string `json:"out_dir"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	PolitenessDelayMs     int    `json:"politeness_delay_ms"`
	MaxRetries            int    `json:"max_retries"`
	Concurrency           int    `json:"concurrency"`
	// ArchiveDb is the sqlite archive path, empty disables archiving.
	ArchiveDb string `json:"archive_db"`
}

// loadConfig reads config.json5 (plus config.local.json5 overrides); a
// missing config just means defaults.
func loadConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if os.IsNotExist(err) {
		return Config{}
	}
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func (c Config) serviceConfig() hot100.Config {
	out := c.OutDir
	if out == "" {
		out = defaultOutDir
	}
	return hot100.Config{
		StartYear:       c.StartYear,
		EndYear:         c.EndYear,
		OutDir:          out,
		RequestTimeout:  time.Duration(c.RequestTimeoutSeconds) * time.Second,
		PolitenessDelay: time.Duration(c.PolitenessDelayMs) * time.Millisecond,
		MaxRetries:      c.MaxRetries,
		Concurrency:     c.Concurrency,
	}
}

// openArchive opens the configured sqlite archive, or returns nil when
// archiving is disabled.
func openArchive(c Config) *sql.DB {
	if c.ArchiveDb == "" {
		return nil
	}
	db, err := sql.Open("sqlite", c.ArchiveDb)
	if err != nil {
		serviceutil.Fatal("failed to open archive db", err)
	}
	_, err = db.Exec(hot100db.Schema)
	if err != nil {
		serviceutil.Fatal("failed to apply archive schema", err)
	}
	return db
}
