package scoop

import (
	"testing"
)

func TestParseList(t *testing.T) {
	output := `Installed apps:

Name     Version  Source  Updated             Info
----     -------  ------  -------             ----
7zip     24.08    main    2024-03-01 10:00:00
git      2.44.0   main    2024-03-02 11:30:00
nodejs   21.6.2   main    2024-02-15 09:00:00 Held package
ripgrep  14.1.0   extras  2024-01-20 08:45:00
`

	apps := ParseList(output)
	if len(apps) != 4 {
		t.Fatalf("expected 4 apps, got %d", len(apps))
	}

	if apps[0].Name != "7zip" || apps[0].Version != "24.08" || apps[0].Bucket != "main" {
		t.Errorf("unexpected first app: %+v", apps[0])
	}
	if apps[0].Updated != "2024-03-01 10:00:00" {
		t.Errorf("expected updated timestamp, got %q", apps[0].Updated)
	}

	if !apps[2].Held {
		t.Error("expected nodejs to be held")
	}
	if apps[0].Held || apps[1].Held || apps[3].Held {
		t.Error("only nodejs should be held")
	}

	if apps[3].Bucket != "extras" {
		t.Errorf("expected ripgrep bucket extras, got %q", apps[3].Bucket)
	}
}

func TestParseListMinimalColumns(t *testing.T) {
	// Version-only rows default the bucket to main.
	apps := ParseList("git 2.44.0\n")
	if len(apps) != 1 {
		t.Fatalf("expected 1 app, got %d", len(apps))
	}
	if apps[0].Bucket != "main" {
		t.Errorf("expected default bucket main, got %q", apps[0].Bucket)
	}
}

func TestParseListEmpty(t *testing.T) {
	for _, output := range []string{"", "Installed apps:\n", "garbage\n"} {
		if apps := ParseList(output); len(apps) != 0 {
			t.Errorf("ParseList(%q) = %d apps, want 0", output, len(apps))
		}
	}
}

func TestParseStatus(t *testing.T) {
	output := `WARN  Scoop out of date. Run 'scoop update' to get the latest changes.

Name    Installed Version  Latest Version  Missing Dependencies  Info
----    -----------------  --------------  --------------------  ----
git     2.43.0             2.44.0
nodejs  21.0.0             21.6.2                                Held package
7zip    24.07              24.08
`

	updates := ParseStatus(output)
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d: %v", len(updates), updates)
	}
	if updates["git"] != "2.44.0" {
		t.Errorf("expected git update 2.44.0, got %q", updates["git"])
	}
	if _, ok := updates["nodejs"]; ok {
		t.Error("held app should not appear in updates")
	}
}

func TestParseHeldList(t *testing.T) {
	output := `These apps are held:
nodejs
python
`
	held := ParseHeldList(output)
	if len(held) != 2 {
		t.Fatalf("expected 2 held apps, got %d: %v", len(held), held)
	}
	if !held["nodejs"] || !held["python"] {
		t.Errorf("unexpected held set: %v", held)
	}
}

func TestParseHeldListNone(t *testing.T) {
	held := ParseHeldList("No apps are held.\n")
	if len(held) != 0 {
		t.Errorf("expected empty held set, got %v", held)
	}
}

func TestParseBucketList(t *testing.T) {
	output := `Name    Source                                       Updated             Manifests
----    ------                                       -------             ---------
main    https://github.com/ScoopInstaller/Main       2024-03-01 10:00:00 1295
extras  https://github.com/ScoopInstaller/Extras    2024-03-01 09:30:00 1980
`

	buckets := ParseBucketList(output)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}

	if buckets[0].Name != "main" {
		t.Errorf("expected main, got %q", buckets[0].Name)
	}
	if buckets[0].Source != "https://github.com/ScoopInstaller/Main" {
		t.Errorf("unexpected source %q", buckets[0].Source)
	}
	if buckets[0].Updated != "2024-03-01 10:00:00" {
		t.Errorf("unexpected updated %q", buckets[0].Updated)
	}
	if buckets[0].Manifests != 1295 {
		t.Errorf("expected 1295 manifests, got %d", buckets[0].Manifests)
	}
}

func TestParseBucketListNameAndSourceOnly(t *testing.T) {
	buckets := ParseBucketList("mybucket https://example.com/bucket\n")
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].Manifests != 0 || buckets[0].Updated != "" {
		t.Errorf("expected zero-value extras, got %+v", buckets[0])
	}
}

func TestParseSearch(t *testing.T) {
	output := `Results from local buckets...

Name     Version  Source  Binaries
----     -------  ------  --------
git      2.44.0   main
git-lfs  3.5.1    main
gitui    0.26.1   extras
`

	results := ParseSearch(output)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].Name != "git-lfs" || results[1].Version != "3.5.1" || results[1].Bucket != "main" {
		t.Errorf("unexpected result: %+v", results[1])
	}
}

func TestParseScoopSearch(t *testing.T) {
	output := `'main' bucket:
    git (2.44.0)
    git-lfs (3.5.1)

'extras' bucket:
    gitui (0.26.1)
`

	results := ParseScoopSearch(output)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Bucket != "main" {
		t.Errorf("expected bucket main, got %q", results[0].Bucket)
	}
	if results[2].Name != "gitui" || results[2].Bucket != "extras" {
		t.Errorf("unexpected result: %+v", results[2])
	}
}

func TestFilterVersionCandidates(t *testing.T) {
	results := []SearchResult{
		{Name: "python", Version: "3.12.2", Bucket: "main"},
		{Name: "python310", Version: "3.10.11", Bucket: "versions"},
		{Name: "python-pip", Version: "24.0", Bucket: "extras"},
		{Name: "ipython", Version: "8.22.0", Bucket: "extras"},
	}

	candidates := FilterVersionCandidates(results, "Python")
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %v", len(candidates), candidates)
	}
	if candidates[0].Name != "python" || candidates[1].Name != "python-pip" {
		t.Errorf("unexpected candidates: %v", candidates)
	}
}
