package scoop

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// Scoop's output formats are not contractually stable, so every parser in
// this file degrades to an empty result on input it cannot make sense of.
// A row is either emitted whole or skipped; partial records never escape.

// ParseList parses `scoop list` output.
//
//	Installed apps:
//
//	Name  Version  Source  Updated             Info
//	----  -------  ------  -------             ----
//	git   2.44.0   main    2024-03-01 10:00:00
func ParseList(output string) []InstalledApp {
	var apps []InstalledApp
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "Installed") ||
			strings.HasPrefix(line, "Name") || strings.HasPrefix(line, "-") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		app := InstalledApp{
			Name:    fields[0],
			Version: fields[1],
			Bucket:  "main",
			Held:    strings.Contains(line, "Held"),
		}
		if len(fields) > 2 {
			app.Bucket = fields[2]
		}
		if len(fields) > 3 {
			app.Updated = fields[3]
			if len(fields) > 4 {
				app.Updated = fields[3] + " " + fields[4]
			}
		}

		apps = append(apps, app)
	}

	return apps
}

// ParseStatus parses `scoop status` output into a map of app name to the
// latest available version. Held rows are skipped: hold suppresses the
// update action, and scoop annotates such rows with "Held package".
func ParseStatus(output string) map[string]string {
	updates := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.Contains(line, "WARN") ||
			strings.Contains(line, "Name") || strings.HasPrefix(line, "-") ||
			strings.Contains(strings.ToLower(line), "held") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) >= 3 {
			updates[fields[0]] = fields[2]
		}
	}

	return updates
}

// ParseHeldList parses `scoop hold` (no arguments) output into the set of
// held app names.
func ParseHeldList(output string) map[string]bool {
	held := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "held") || strings.Contains(lower, "no apps") {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			held[fields[0]] = true
		}
	}

	return held
}

// ParseBucketList parses `scoop bucket list` output.
//
//	Name    Source                                    Updated             Manifests
//	----    ------                                    -------             ---------
//	main    https://github.com/ScoopInstaller/Main    2024-03-01 10:00:00 1200
func ParseBucketList(output string) []Bucket {
	var buckets []Bucket
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "Name") || strings.HasPrefix(line, "-") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		b := Bucket{Name: fields[0], Source: fields[1]}
		if len(fields) >= 4 {
			b.Updated = fields[2] + " " + fields[3]
			if len(fields) >= 5 {
				if n, err := strconv.Atoi(fields[4]); err == nil {
					b.Manifests = n
				}
			}
		}

		buckets = append(buckets, b)
	}

	return buckets
}

// ParseSearch parses `scoop search` output. Columns are name, version,
// source, with the usual header noise.
func ParseSearch(output string) []SearchResult {
	var results []SearchResult
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.Contains(line, "Results") ||
			strings.HasPrefix(line, "-") || strings.HasPrefix(line, "Name") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) >= 3 {
			results = append(results, SearchResult{
				Name:    fields[0],
				Version: fields[1],
				Bucket:  fields[2],
			})
		}
	}

	return results
}

// scoopSearchEntry matches the `name (version)` rows scoop-search prints
// under each bucket heading.
var scoopSearchEntry = regexp.MustCompile(`^(\S+)\s+\(([^)]+)\)`)

// ParseScoopSearch parses output from the scoop-search helper binary,
// which groups results under `'bucket' bucket:` headings.
func ParseScoopSearch(output string) []SearchResult {
	var results []SearchResult
	scanner := bufio.NewScanner(strings.NewReader(output))
	currentBucket := "unknown"

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "Results") {
			continue
		}

		if strings.HasPrefix(line, "'") && strings.Contains(strings.ToLower(line), "bucket") {
			if parts := strings.Split(line, "'"); len(parts) >= 2 {
				currentBucket = parts[1]
			}
			continue
		}

		if m := scoopSearchEntry.FindStringSubmatch(line); m != nil {
			results = append(results, SearchResult{
				Name:    m[1],
				Version: m[2],
				Bucket:  currentBucket,
			})
		}
	}

	return results
}

// FilterVersionCandidates narrows search results to versions of one app:
// exact name matches plus `name-variant` forks, case-insensitive.
func FilterVersionCandidates(results []SearchResult, app string) []VersionCandidate {
	var candidates []VersionCandidate
	appLower := strings.ToLower(app)

	for _, r := range results {
		nameLower := strings.ToLower(r.Name)
		if nameLower == appLower || strings.HasPrefix(nameLower, appLower+"-") {
			candidates = append(candidates, VersionCandidate{
				Name:    r.Name,
				Version: r.Version,
				Bucket:  r.Bucket,
			})
		}
	}

	return candidates
}
