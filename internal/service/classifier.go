package service

import (
	"context"
	"strings"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
)

// Affinity weights for a label hit or miss on a product's tags and name.
const (
	tagHit   = 0.8
	tagMiss  = 0.2
	nameHit  = 0.9
	nameMiss = 0.1
)

type CategoryScore struct {
	Category string
	Score    float64
}

// Classification holds one product's scores in the order the labels were requested.
type Classification struct {
	Product string
	Scores  []CategoryScore
}

type Classifier struct {
	catalog catalog.Store
}

func NewClassifier(products catalog.Store) *Classifier {
	return &Classifier{catalog: products}
}

// Classify scores every catalog product against each label by
// case-insensitive substring match. Repeated labels are scored once, at the
// position they first appear. An empty label list is rejected with
// ErrMissingCategories rather than yielding products with no scores.
func (c *Classifier) Classify(ctx context.Context, categories []string) ([]Classification, error) {
	labels := uniqueLabels(categories)
	if len(labels) == 0 {
		return nil, domain.ErrMissingCategories
	}

	products, err := c.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Classification, 0, len(products))
	for _, p := range products {
		name := strings.ToLower(p.Name)
		tags := make([]string, len(p.Tags))
		for i, t := range p.Tags {
			tags[i] = strings.ToLower(t)
		}

		scores := make([]CategoryScore, 0, len(labels))
		for _, label := range labels {
			needle := strings.ToLower(label)
			scores = append(scores, CategoryScore{
				Category: label,
				Score:    (tagAffinity(tags, needle) + nameAffinity(name, needle)) / 2,
			})
		}
		results = append(results, Classification{Product: p.Name, Scores: scores})
	}
	return results, nil
}

func tagAffinity(tags []string, needle string) float64 {
	for _, t := range tags {
		if strings.Contains(t, needle) {
			return tagHit
		}
	}
	return tagMiss
}

func nameAffinity(name, needle string) float64 {
	if strings.Contains(name, needle) {
		return nameHit
	}
	return nameMiss
}

func uniqueLabels(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	labels := make([]string, 0, len(categories))
	for _, c := range categories {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		labels = append(labels, c)
	}
	return labels
}
