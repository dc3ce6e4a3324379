package services

import (
	"sort"
	"strings"

	"fupa/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const similarityThreshold = 0.7

type ScoredUser struct {
	User  models.User
	Score int
}

func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

// SearchEmployees ranks users against query by name and email, tolerating
// accents and small typos. Users that do not match at all are dropped.
func SearchEmployees(users []models.User, query string, limit int) []models.User {
	q := normalizeInput(query)
	if q == "" || len(users) == 0 {
		return nil
	}

	names := make([]string, 0, len(users))
	seen := make(map[string]bool)
	for _, u := range users {
		n := normalizeInput(u.Name)
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	closest := ""
	if len(names) > 0 {
		closest = closestmatch.New(names, []int{2, 3}).Closest(q)
	}

	var scored []ScoredUser
	for _, u := range users {
		if s := scoreUser(q, u, closest); s > 0 {
			scored = append(scored, ScoredUser{User: u, Score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].User.Name < scored[j].User.Name
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]models.User, len(scored))
	for i, s := range scored {
		out[i] = s.User
	}
	return out
}

func scoreUser(q string, u models.User, closest string) int {
	name := normalizeInput(u.Name)
	email := normalizeInput(u.Email)
	score := 0

	if name != "" && strings.Contains(name, q) {
		score += 20
	}
	if strings.Contains(email, q) {
		score += 15
	}
	if sim := calculateSimilarity(q, name); sim > similarityThreshold {
		score += int(sim * 10)
	}
	// closestmatch always answers, so it only breaks ties between real matches
	if score > 0 && closest != "" && closest == name {
		score += 5
	}
	return score
}
