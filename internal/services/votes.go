package services

import (
	"kenics-pageant-site/internal/models"
)

// votePackages are the static pricing tiers offered on the contestant detail
// page. The purchase flow itself is handled by the payment provider after
// registration; these only drive the selector.
var votePackages = []models.VotePackage{
	{Votes: 1, Price: 1000, PerVote: 1000},
	{Votes: 5, Price: 4500, PerVote: 900},
	{Votes: 10, Price: 9000, PerVote: 900, Popular: true},
	{Votes: 20, Price: 17000, PerVote: 850},
	{Votes: 50, Price: 40000, PerVote: 800},
	{Votes: 100, Price: 75000, PerVote: 750},
}

var categoryLabels = map[models.Category]string{
	models.CategoryBaby: "Baby Kenics",
	models.CategoryTeen: "Teen Kenics",
	models.CategoryMiss: "Miss Kenics",
	models.CategoryMrs:  "Mrs. Kenics",
}

// registrationFees are the per-category entry fees in naira
var registrationFees = map[models.Category]int{
	models.CategoryBaby: 10000,
	models.CategoryTeen: 20000,
	models.CategoryMiss: 40000,
	models.CategoryMrs:  50000,
}

// VoteService serves the static vote-package and category tables
type VoteService struct{}

// NewVoteService creates a vote service
func NewVoteService() *VoteService {
	return &VoteService{}
}

// Packages returns all vote packages in display order
func (s *VoteService) Packages() []models.VotePackage {
	packages := make([]models.VotePackage, len(votePackages))
	copy(packages, votePackages)
	return packages
}

// Package returns the package with the given vote count
func (s *VoteService) Package(votes int) (models.VotePackage, bool) {
	for _, pkg := range votePackages {
		if pkg.Votes == votes {
			return pkg, true
		}
	}
	return models.VotePackage{}, false
}

// CategoryLabel returns the display label for a category
func (s *VoteService) CategoryLabel(c models.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// RegistrationFee returns the entry fee in naira for a category
func (s *VoteService) RegistrationFee(c models.Category) int {
	return registrationFees[c]
}

// Categories returns the contest categories in display order
func (s *VoteService) Categories() []models.Category {
	return []models.Category{
		models.CategoryBaby,
		models.CategoryTeen,
		models.CategoryMiss,
		models.CategoryMrs,
	}
}
