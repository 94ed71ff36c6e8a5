package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Condition identifies the experimental state a file was recorded under.
type Condition string

const (
	ConditionOn       Condition = "on"
	ConditionOff      Condition = "off"
	ConditionIsolated Condition = "isolated"
)

// MatchState classifies the outcome of looking for one condition's file.
type MatchState int

const (
	MatchNotFound MatchState = iota
	MatchFound
	MatchAmbiguous
)

// Match is the discovery result for a single condition. Candidates holds
// every matching path; Path is set only in the MatchFound state.
type Match struct {
	State      MatchState
	Path       string
	Candidates []string
}

func (m Match) String() string {
	switch m.State {
	case MatchFound:
		return fmt.Sprintf("found %s", filepath.Base(m.Path))
	case MatchAmbiguous:
		return fmt.Sprintf("ambiguous (%d candidates)", len(m.Candidates))
	default:
		return "not found"
	}
}

// ConditionFiles holds the discovery result for all three conditions of a
// measurement folder. The caller decides policy; discovery never guesses.
type ConditionFiles struct {
	On       Match
	Off      Match
	Isolated Match
}

// FindConditionFiles scans a folder's .csv files and attributes each to a
// condition by case-insensitive substring match on the filename. "off" is
// tested before "on", so a name containing both keywords resolves to the
// OFF role. Files matching no keyword are ignored.
func FindConditionFiles(dir string) (*ConditionFiles, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan folder %s: %w", dir, err)
	}

	candidates := map[Condition][]string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		name := strings.ToLower(entry.Name())
		path := filepath.Join(dir, entry.Name())
		switch {
		case strings.Contains(name, "off"):
			candidates[ConditionOff] = append(candidates[ConditionOff], path)
		case strings.Contains(name, "on"):
			candidates[ConditionOn] = append(candidates[ConditionOn], path)
		case strings.Contains(name, "isol"):
			// Covers "isole", "isolé" and casing variants.
			candidates[ConditionIsolated] = append(candidates[ConditionIsolated], path)
		}
	}

	return &ConditionFiles{
		On:       matchFor(candidates[ConditionOn]),
		Off:      matchFor(candidates[ConditionOff]),
		Isolated: matchFor(candidates[ConditionIsolated]),
	}, nil
}

func matchFor(paths []string) Match {
	switch len(paths) {
	case 0:
		return Match{State: MatchNotFound}
	case 1:
		return Match{State: MatchFound, Path: paths[0], Candidates: paths}
	default:
		return Match{State: MatchAmbiguous, Candidates: paths}
	}
}
