package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeScan()
	c.normalizeOMDB()
	c.normalizeIMDB()
	if err := c.normalizeLookup(); err != nil {
		return err
	}
	c.normalizeActors()
	return c.normalizeLogging()
}

func (c *Config) normalizeScan() {
	c.Scan.Pattern = strings.TrimSpace(c.Scan.Pattern)
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = append([]string(nil), defaultExtensions...)
		return
	}
	normalized := make([]string, 0, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Scan.Extensions = normalized
}

func (c *Config) normalizeOMDB() {
	if c.OMDB.APIKey == "" {
		if value, ok := os.LookupEnv("OMDB_API_KEY"); ok {
			c.OMDB.APIKey = value
		}
	}
	c.OMDB.APIKey = strings.TrimSpace(c.OMDB.APIKey)
	c.OMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.OMDB.BaseURL), "/")
	if c.OMDB.BaseURL == "" {
		c.OMDB.BaseURL = defaultOMDBBaseURL
	}
}

func (c *Config) normalizeIMDB() {
	c.IMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.IMDB.BaseURL), "/")
	if c.IMDB.BaseURL == "" {
		c.IMDB.BaseURL = defaultIMDBBaseURL
	}
}

func (c *Config) normalizeLookup() error {
	if c.Lookup.TimeoutSeconds == 0 {
		c.Lookup.TimeoutSeconds = defaultLookupTimeout
	}
	if c.Lookup.RetryAttempts == 0 {
		c.Lookup.RetryAttempts = defaultLookupRetries
	}
	if strings.TrimSpace(c.Lookup.CachePath) == "" {
		c.Lookup.CachePath = defaultLookupCache
	}
	var err error
	if c.Lookup.CachePath, err = expandPath(c.Lookup.CachePath); err != nil {
		return fmt.Errorf("lookup.cache_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeActors() {
	if c.Actors.MinRating == 0 {
		c.Actors.MinRating = defaultActorMinRating
	}
	if c.Actors.MaxPages == 0 {
		c.Actors.MaxPages = defaultActorMaxPages
	}
	c.Actors.DirName = strings.TrimSpace(c.Actors.DirName)
	if c.Actors.DirName == "" {
		c.Actors.DirName = defaultActorsDirName
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir
	}
	var err error
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
