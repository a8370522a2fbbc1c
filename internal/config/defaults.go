package config

import "cinetree/internal/films"

const (
	defaultOMDBBaseURL    = "http://www.omdbapi.com"
	defaultIMDBBaseURL    = "https://www.imdb.com"
	defaultLookupTimeout  = 15
	defaultLookupRetries  = 3
	defaultLookupCache    = "~/.cache/cinetree/lookup.db"
	defaultLogDir         = "~/.local/share/cinetree/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultActorMinRating = 7.0
	defaultActorMaxPages  = 3
	defaultActorsDirName  = "Films by Actor"
)

// defaultExtensions is the container format allow-list for library scans.
var defaultExtensions = []string{".avi", ".mkv", ".mp4", ".m4v", ".xvid", ".divx"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Pattern:    films.DefaultPattern,
			Extensions: append([]string(nil), defaultExtensions...),
			Dedup:      false,
		},
		OMDB: OMDB{
			BaseURL: defaultOMDBBaseURL,
		},
		IMDB: IMDB{
			BaseURL: defaultIMDBBaseURL,
		},
		Lookup: Lookup{
			TimeoutSeconds: defaultLookupTimeout,
			RetryAttempts:  defaultLookupRetries,
			CacheEnabled:   true,
			CachePath:      defaultLookupCache,
		},
		Actors: Actors{
			MinRating: defaultActorMinRating,
			MaxPages:  defaultActorMaxPages,
			DirName:   defaultActorsDirName,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
