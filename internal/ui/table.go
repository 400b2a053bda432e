package ui

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mos1128/scoop-easy/internal/oplog"
	"github.com/mos1128/scoop-easy/pkg/scoop"
)

func newWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func header(cols ...string) string {
	bold := make([]string, len(cols))
	for i, c := range cols {
		bold[i] = Bold(strings.ToUpper(c))
	}
	return strings.Join(bold, "\t")
}

// PrintApps prints installed apps in a formatted table.
func PrintApps(apps []scoop.InstalledApp) {
	if len(apps) == 0 {
		MutedMsg("No apps installed")
		return
	}

	w := newWriter()
	fmt.Fprintln(w, header("name", "version", "bucket", "updated", "status"))
	for _, app := range apps {
		status := ""
		if app.HasUpdate {
			status = UpdateMarker.Sprintf("update: %s", app.LatestVersion)
		}
		if app.Held {
			if status != "" {
				status += " "
			}
			status += HeldMarker.Sprint("held")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			AppName.Sprint(app.Name), AppVersion.Sprint(app.Version),
			BucketName.Sprint(app.Bucket), app.Updated, status)
	}
	w.Flush() //nolint:errcheck
}

// PrintBuckets prints the configured buckets.
func PrintBuckets(buckets []scoop.Bucket) {
	if len(buckets) == 0 {
		MutedMsg("No buckets configured")
		return
	}

	w := newWriter()
	fmt.Fprintln(w, header("name", "source", "updated", "manifests"))
	for _, b := range buckets {
		manifests := ""
		if b.Manifests > 0 {
			manifests = fmt.Sprintf("%d", b.Manifests)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			BucketName.Sprint(b.Name), b.Source, b.Updated, manifests)
	}
	w.Flush() //nolint:errcheck
}

// PrintSearchResults prints search hits.
func PrintSearchResults(results []scoop.SearchResult) {
	if len(results) == 0 {
		MutedMsg("No results found")
		return
	}

	w := newWriter()
	fmt.Fprintln(w, header("name", "version", "bucket", "description"))
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			AppName.Sprint(r.Name), AppVersion.Sprint(r.Version),
			BucketName.Sprint(r.Bucket), r.Description)
	}
	w.Flush() //nolint:errcheck
}

// PrintVersions prints version candidates for one app.
func PrintVersions(candidates []scoop.VersionCandidate) {
	if len(candidates) == 0 {
		MutedMsg("No versions found")
		return
	}

	w := newWriter()
	fmt.Fprintln(w, header("name", "version", "bucket"))
	for _, c := range candidates {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			AppName.Sprint(c.Name), AppVersion.Sprint(c.Version), BucketName.Sprint(c.Bucket))
	}
	w.Flush() //nolint:errcheck
}

// PrintRelated prints related apps with their shared executables.
func PrintRelated(related []scoop.RelatedApp) {
	if len(related) == 0 {
		MutedMsg("No related apps")
		return
	}

	w := newWriter()
	fmt.Fprintln(w, header("name", "version", "bucket", "shared bins"))
	for _, r := range related {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			AppName.Sprint(r.Name), AppVersion.Sprint(r.Version),
			BucketName.Sprint(r.Bucket), strings.Join(r.SharedBins, ", "))
	}
	w.Flush() //nolint:errcheck
}

// PrintLogs prints operation log entries, newest first.
func PrintLogs(entries []oplog.Entry) {
	if len(entries) == 0 {
		MutedMsg("No log entries")
		return
	}

	w := newWriter()
	fmt.Fprintln(w, header("time", "operation", "command", "result"))
	for _, e := range entries {
		result := Green("ok")
		if !e.Success {
			result = FailureMarker.Sprint("failed")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.FormatTime(), e.Operation, e.Command, result)
	}
	w.Flush() //nolint:errcheck
}
