// Copyright (c) 2026 Fithub. All rights reserved.

/*
Package plan defines the core domain entities for the Fithub coaching catalogue.

It manages the lifecycle of workout plans published by trainers, including
metadata, pricing, discovery filters, and teaser-based access control.

Core Responsibility:

  - Catalogue: Defines difficulties (Beginner, Intermediate, Advanced) and categories.
  - Discovery: Browse filters, the personalised feed, and URL-safe slugs.
  - Access: The teaser policy that withholds paid content from non-subscribers.

This package acts as the source of truth for all plan-related data models.
*/
package plan

import "time"

// # Domain Enums

// Difficulty represents the training level a plan targets.
type Difficulty string

const (
	// DifficultyBeginner targets clients new to structured training.
	DifficultyBeginner Difficulty = "beginner"

	// DifficultyIntermediate targets clients with consistent training history.
	DifficultyIntermediate Difficulty = "intermediate"

	// DifficultyAdvanced targets experienced clients.
	DifficultyAdvanced Difficulty = "advanced"
)

// IsValid reports whether d is a recognised [Difficulty] value.
func (d Difficulty) IsValid() bool {
	switch d {
	case
		DifficultyBeginner,
		DifficultyIntermediate,
		DifficultyAdvanced:
		return true
	}
	return false
}

// # Core Entities

// Plan is the central aggregate of the coaching catalogue.
// It represents a single purchasable workout plan authored by a trainer.
type Plan struct {
	ID           string     `json:"id"`
	TrainerID    string     `json:"trainer_id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"` // URL-safe identifier
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	DurationDays int        `json:"duration_days"`
	Difficulty   Difficulty `json:"difficulty"`
	Category     string     `json:"category"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Denormalized author fields for catalogue views.
	TrainerHandle      string `json:"trainer_handle,omitempty"`
	TrainerDisplayName string `json:"trainer_display_name,omitempty"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered plan browse query.
type Filter struct {
	Category   string     `json:"category,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	TrainerID  string     `json:"trainer_id,omitempty"`
	MaxPrice   *float64   `json:"max_price,omitempty"`
	Query      string     `json:"q,omitempty"` // Title search term
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID           = "id"
	FieldTrainerID    = "trainer_id"
	FieldTitle        = "title"
	FieldSlug         = "slug"
	FieldDescription  = "description"
	FieldPrice        = "price"
	FieldDurationDays = "duration_days"
	FieldDifficulty   = "difficulty"
	FieldCategory     = "category"
	FieldIsActive     = "is_active"
)
