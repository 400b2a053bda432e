package scoop

import (
	"fmt"
	"regexp"
)

// Validation happens before any subprocess runs. The patterns mirror what
// Scoop itself accepts for names, which also keeps shell metacharacters
// out of the constructed command lines.
var (
	appNamePattern     = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	versionPattern     = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	bucketNamePattern  = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
	urlPattern         = regexp.MustCompile(`^https?://\S+$`)
	searchQueryPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-. ]+$`)
)

// ValidateAppName reports whether name is a legal Scoop app name.
func ValidateAppName(name string) error {
	if !appNamePattern.MatchString(name) {
		return fmt.Errorf("invalid app name: %q", name)
	}
	return nil
}

// ValidateAppNames validates a batch of app names.
func ValidateAppNames(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("no apps specified")
	}
	for _, name := range names {
		if err := ValidateAppName(name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVersion reports whether version is a legal version string.
func ValidateVersion(version string) error {
	if !versionPattern.MatchString(version) {
		return fmt.Errorf("invalid version: %q", version)
	}
	return nil
}

// ValidateBucketName reports whether name is a legal bucket name.
func ValidateBucketName(name string) error {
	if !bucketNamePattern.MatchString(name) {
		return fmt.Errorf("invalid bucket name: %q", name)
	}
	return nil
}

// ValidateBucketURL reports whether url is an acceptable bucket source URL.
func ValidateBucketURL(url string) error {
	if !urlPattern.MatchString(url) {
		return fmt.Errorf("invalid bucket URL: %q", url)
	}
	return nil
}

// ValidateSearchQuery reports whether q is an acceptable search query.
func ValidateSearchQuery(q string) error {
	if q == "" || !searchQueryPattern.MatchString(q) {
		return fmt.Errorf("invalid search query: %q", q)
	}
	return nil
}
