// Copyright (c) 2026 Fithub. All rights reserved.

package plan

import (
	"time"

	"github.com/fithub/fithub/internal/platform/sec"
)

// # Access Policy

// View is the access-filtered representation of a [Plan] returned to clients.
//
// The Description pointer is nil when the viewer has teaser access only;
// full access populates it. FullAccess makes the distinction explicit so
// clients do not have to infer it from a missing field.
type View struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Slug               string     `json:"slug"`
	Description        *string    `json:"description,omitempty"`
	Price              float64    `json:"price"`
	DurationDays       int        `json:"duration_days"`
	Difficulty         Difficulty `json:"difficulty"`
	Category           string     `json:"category"`
	TrainerID          string     `json:"trainer_id"`
	TrainerHandle      string     `json:"trainer_handle,omitempty"`
	TrainerDisplayName string     `json:"trainer_display_name,omitempty"`
	FullAccess         bool       `json:"full_access"`
	CreatedAt          time.Time  `json:"created_at"`
}

/*
HasFullAccess decides whether a viewer may read the paid content of a plan.

Description: Pure access rule with no storage or clock dependencies. Full
access is granted to the authoring trainer and to viewers holding an active
subscription. Everyone else, including anonymous viewers, gets the teaser.

Parameters:
  - p: *Plan
  - viewer: *sec.Identity (nil for anonymous requests)
  - subscribed: bool (Whether the viewer holds an active subscription)

Returns:
  - bool: True when the full plan content is visible
*/
func HasFullAccess(p *Plan, viewer *sec.Identity, subscribed bool) bool {
	if viewer == nil {
		return false
	}
	if viewer.AccountID == p.TrainerID {
		return true
	}
	return subscribed
}

/*
Render maps a plan onto its access-filtered [View].

Description: Always exposes the teaser fields (title, trainer, price,
duration, difficulty, category). The description is attached only when
[HasFullAccess] grants it.

Parameters:
  - p: *Plan
  - viewer: *sec.Identity (nil for anonymous requests)
  - subscribed: bool

Returns:
  - View: The filtered representation
*/
func Render(p *Plan, viewer *sec.Identity, subscribed bool) View {
	view := View{
		ID:                 p.ID,
		Title:              p.Title,
		Slug:               p.Slug,
		Price:              p.Price,
		DurationDays:       p.DurationDays,
		Difficulty:         p.Difficulty,
		Category:           p.Category,
		TrainerID:          p.TrainerID,
		TrainerHandle:      p.TrainerHandle,
		TrainerDisplayName: p.TrainerDisplayName,
		CreatedAt:          p.CreatedAt,
	}

	if HasFullAccess(p, viewer, subscribed) {
		description := p.Description
		view.Description = &description
		view.FullAccess = true
	}

	return view
}
