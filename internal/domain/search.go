package domain

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier is better)
	ScorePositionBonus = 10.0
)

// Hit is a ranked search result.
type Hit struct {
	Category string   `json:"category"`
	Index    int      `json:"index"`
	Bookmark Bookmark `json:"bookmark"`
	Score    float64  `json:"score"`
}

// siteNames implements fuzzy.Source over a flattened board.
type siteNames []Hit

func (s siteNames) String(i int) string { return strings.ToLower(s[i].Bookmark.SiteName) }
func (s siteNames) Len() int            { return len(s) }

// RankBookmarks scores every bookmark of the board against query and returns
// the matches best first. Ties keep board order (category order, then index).
func RankBookmarks(query string, s State) []Hit {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	all := flatten(s)
	if len(all) == 0 {
		return nil
	}

	// Fuzzy subsequence scores, normalized against the best one.
	fuzzyScores := make(map[int]float64)
	matches := fuzzy.FindFrom(query, siteNames(all))
	if len(matches) > 0 {
		best := matches[0].Score
		worst := matches[len(matches)-1].Score
		for _, m := range matches {
			ratio := 1.0
			if best != worst {
				ratio = float64(m.Score-worst) / float64(best-worst)
			}
			fuzzyScores[m.Index] = ScoreFuzzyMatch * (0.5 + 0.5*ratio)
		}
	}

	hits := make([]Hit, 0, len(all))
	for i, h := range all {
		score := scoreName(query, strings.ToLower(h.Bookmark.SiteName))
		if score == 0 {
			score = fuzzyScores[i]
		}
		if score == 0 {
			continue
		}
		h.Score = score
		hits = append(hits, h)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits
}

// BestBookmark returns the top hit, false when nothing matches.
func BestBookmark(query string, s State) (Hit, bool) {
	hits := RankBookmarks(query, s)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// scoreName applies the exact / prefix / substring / all-words tiers.
func scoreName(query, name string) float64 {
	if query == name {
		return ScoreExactMatch
	}
	if strings.HasPrefix(name, query) {
		return ScorePrefixMatch
	}
	if idx := strings.Index(name, query); idx >= 0 {
		return ScoreSubstringMatch + ScorePositionBonus*(1.0-float64(idx)/float64(len(name)))
	}

	words := strings.Fields(query)
	if len(words) > 1 {
		for _, w := range words {
			if !strings.Contains(name, w) {
				return 0
			}
		}
		return ScoreFuzzyMatch
	}
	return 0
}

func flatten(s State) []Hit {
	out := make([]Hit, 0, s.BookmarkCount())
	for _, name := range s.Order {
		for i, b := range s.Categories[name] {
			out = append(out, Hit{Category: name, Index: i, Bookmark: b})
		}
	}
	return out
}
