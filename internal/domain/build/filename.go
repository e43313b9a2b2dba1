package build

import "strings"

const (
	defaultJSONSlug = "campaign_build"
	defaultCSVSlug  = "campaign"
)

// Slug lowercases name and replaces every character outside [A-Za-z0-9]
// with an underscore. An empty name yields fallback.
func Slug(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r + ('a' - 'A'))
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// JSONFileName is the download name of a saved build
func JSONFileName(b *Build) string {
	return Slug(b.ClientName, defaultJSONSlug) + ".json"
}

// CSVFileName is the download name of a bulk upload export
func CSVFileName(b *Build) string {
	return "google_ads_" + Slug(b.ClientName, defaultCSVSlug) + "_upload.csv"
}
