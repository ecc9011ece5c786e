package vcs

import (
	"strconv"
	"strings"
	"time"
)

// parseCommitLog splits null-delimited `git log --format` output into
// commits, four fields (hash, author, date, subject) per entry.
func parseCommitLog(output string) []Commit {
	var entries []string
	for _, e := range strings.Split(output, "\x00") {
		e = strings.TrimSpace(e)
		if e != "" {
			entries = append(entries, e)
		}
	}

	var commits []Commit
	for i := 0; i+3 < len(entries); i += 4 {
		date, _ := time.Parse(time.RFC3339, entries[i+2])
		commits = append(commits, Commit{
			Hash:    entries[i],
			Author:  entries[i+1],
			Date:    date,
			Message: entries[i+3],
		})
	}
	return commits
}

type lineStat struct {
	additions int
	deletions int
}

// parseNumstat parses `git show --numstat` output into a path -> line
// counts map, resolving rename syntax ("{old => new}/file" and
// "old.go => new.go") to the new path.
func parseNumstat(output string) map[string]lineStat {
	stats := make(map[string]lineStat)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}

		path := resolveRenamedPath(parts[2])
		additions := 0
		if parts[0] != "-" {
			additions, _ = strconv.Atoi(parts[0])
		}
		deletions := 0
		if parts[1] != "-" {
			deletions, _ = strconv.Atoi(parts[1])
		}
		stats[path] = lineStat{additions: additions, deletions: deletions}
	}
	return stats
}

func resolveRenamedPath(path string) string {
	if !strings.Contains(path, "=>") {
		return path
	}
	if strings.Contains(path, "{") {
		before, rest, _ := strings.Cut(path, "{")
		inside, after, _ := strings.Cut(rest, "}")
		_, newPart, _ := strings.Cut(inside, "=>")
		return before + strings.TrimSpace(newPart) + after
	}
	_, newPath, _ := strings.Cut(path, "=>")
	return strings.TrimSpace(newPath)
}

// parseNameStatus parses `git show --name-status` output, combining each
// entry with the line counts already collected from numstat.
func parseNameStatus(output string, stats map[string]lineStat) []ChangedFile {
	var files []ChangedFile
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}

		status, ok := statusMap[parts[0][0]]
		if !ok {
			status = StatusUnknown
		}

		if (parts[0][0] == 'R' || parts[0][0] == 'C') && len(parts) >= 3 {
			stat := stats[parts[2]]
			files = append(files, ChangedFile{
				Path:      parts[2],
				OldPath:   parts[1],
				Status:    status,
				Additions: stat.additions,
				Deletions: stat.deletions,
			})
			continue
		}

		stat := stats[parts[1]]
		files = append(files, ChangedFile{
			Path:      parts[1],
			Status:    status,
			Additions: stat.additions,
			Deletions: stat.deletions,
		})
	}
	return files
}
