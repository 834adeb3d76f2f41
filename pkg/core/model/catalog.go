// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
//
// Entities of this project are plain relational rows. Instead of one
// struct per entity and per product variant, each entity is described
// by a Schema descriptor and its rows are carried as Record maps.
// A Catalog groups the four descriptors of one product variant.
package model

import (
	"errors"
	"fmt"
)

// Variant specifies which product is served: the supercar experience
// site or the tours agency site. Both have the same resources shape
// with different table and column names.
type Variant int

// Valid values for the Variant enum.
const (
	VariantInvalid Variant = iota // zero value is invalid

	VariantSupercar
	VariantTours
)

// ErrUnknownVariant indicates that a string is not a known variant.
var ErrUnknownVariant = errors.New("unknown catalog variant")

// String converts v to its configuration string. Invalid v panics.
func (v Variant) String() string {
	switch v {
	case VariantSupercar:
		return "supercar"
	case VariantTours:
		return "tours"
	default:
		panic(fmt.Sprintf("invalid variant: %d", int(v)))
	}
}

// ParseVariant parses the configuration string form of a variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "supercar":
		return VariantSupercar, nil
	case "tours":
		return VariantTours, nil
	default:
		return VariantInvalid, ErrUnknownVariant
	}
}

// Catalog holds the entity descriptors of one product variant.
type Catalog struct {
	Variant Variant
	Service string // reported by the health check

	Staff     *Schema // drivers or guides
	Offerings *Schema // experiences or tours
	Reviews   *Schema // thrill_reviews or reviews
	Bookings  *Schema
}

// Schemas returns all descriptors of c in a fixed order, which is also
// the order of the reported table counts.
func (c *Catalog) Schemas() []*Schema {
	return []*Schema{c.Staff, c.Offerings, c.Reviews, c.Bookings}
}

// Tables returns table names of all descriptors of c.
func (c *Catalog) Tables() []string {
	ss := c.Schemas()
	tt := make([]string, len(ss))
	for i, s := range ss {
		tt[i] = s.Table
	}
	return tt
}

// NewCatalog returns freshly allocated descriptors of the v variant,
// so callers may adjust them (e.g. listing limits) independently.
func NewCatalog(v Variant) (*Catalog, error) {
	switch v {
	case VariantSupercar:
		return supercarCatalog(), nil
	case VariantTours:
		return toursCatalog(), nil
	default:
		return nil, fmt.Errorf("variant %d: %w", int(v), ErrUnknownVariant)
	}
}

// Validation tags which must be registered by the validator adapter.
const (
	RulePersonName = "person_name"
	RuleEmail      = "simple_email"
	RulePhone      = "phone"
)

func text(name string) Field {
	return Field{Name: name, Kind: KindText, Mutable: true}
}

func integer(name string) Field {
	return Field{Name: name, Kind: KindInt, Mutable: true}
}

func activeFlag() Field {
	return Field{
		Name: "is_active", Kind: KindBool, Mutable: true, Default: true,
	}
}

func reviewFields(refs ...string) []Field {
	ff := []Field{
		{Name: "client_name", Kind: KindText, Required: true, Rules: RulePersonName},
		{Name: "rating", Kind: KindInt, Required: true, Rules: "min=0,max=5"},
		{Name: "comment", Kind: KindText},
	}
	for _, ref := range refs {
		ff = append(ff, Field{Name: ref, Kind: KindInt})
	}
	return append(ff, Field{
		Name: "is_approved", Kind: KindBool, Mutable: true, Default: false,
	})
}

func bookingFields(staffRef, offeringRef, date, timeOrEnd string, k Kind) []Field {
	return []Field{
		{Name: "client_name", Kind: KindText, Required: true, Rules: RulePersonName},
		{Name: "client_email", Kind: KindText, Required: true, Rules: RuleEmail},
		{Name: "client_phone", Kind: KindText, Required: true, Rules: RulePhone},
		{Name: staffRef, Kind: KindInt},
		{Name: offeringRef, Kind: KindInt},
		{Name: date, Kind: KindDate, Required: true},
		{Name: timeOrEnd, Kind: k, Required: true},
		{Name: "participants_count", Kind: KindInt, Default: int64(1), Lenient: true},
		{Name: "notes", Kind: KindText, Mutable: true, Default: ""},
		{Name: "status", Kind: KindText, Mutable: true, Default: "pending"},
	}
}

func supercarCatalog() *Catalog {
	return &Catalog{
		Variant: VariantSupercar,
		Service: "supercar-experience",
		Staff: &Schema{
			Name:  "drivers",
			Table: "drivers",
			Fields: []Field{
				text("full_name"), text("title"), integer("discipline_id"),
				text("bio"), text("certifications"),
				integer("experience_years"), text("hero_car"),
				text("image_url"), text("email"), text("phone"),
				text("languages"), activeFlag(),
			},
			Visible: "is_active",
			OrderBy: []string{"experience_years DESC"},
			Touch:   "updated_at",
		},
		Offerings: &Schema{
			Name:  "experiences",
			Table: "experiences",
			Fields: []Field{
				text("name"), text("description"), text("track_layout"),
				integer("intensity_level"), integer("duration_minutes"),
				text("price_range"), text("location"), integer("max_cars"),
				integer("discipline_id"), text("image_url"), activeFlag(),
			},
			Visible: "is_active",
			OrderBy: []string{"intensity_level DESC", "created_at DESC"},
			Limits:  &Limits{Default: 20, Max: 50},
		},
		Reviews: &Schema{
			Name:    "reviews",
			Table:   "thrill_reviews",
			Fields:  reviewFields("experience_id", "driver_id"),
			Visible: "is_approved",
			OrderBy: []string{"created_at DESC"},
			Limits:  &Limits{Default: 6, Max: 24},
		},
		Bookings: &Schema{
			Name:  "bookings",
			Table: "bookings",
			Fields: bookingFields(
				"driver_id", "experience_id",
				"preferred_track_date", "preferred_track_time", KindTime,
			),
			OrderBy: []string{"created_at DESC"},
		},
	}
}

func toursCatalog() *Catalog {
	return &Catalog{
		Variant: VariantTours,
		Service: "tours-agency",
		Staff: &Schema{
			Name:  "guides",
			Table: "guides",
			Fields: []Field{
				text("full_name"), text("title"), integer("specialty_id"),
				text("bio"), text("education"),
				integer("experience_years"), text("location"),
				text("image_url"), text("email"), text("phone"),
				text("languages"), activeFlag(),
			},
			Visible: "is_active",
			OrderBy: []string{"experience_years DESC"},
			Touch:   "updated_at",
		},
		Offerings: &Schema{
			Name:  "tours",
			Table: "tours",
			Fields: []Field{
				text("name"), text("description"), integer("duration_days"),
				text("price_range"), text("destination"),
				text("difficulty_level"), integer("max_participants"),
				integer("specialty_id"), text("image_url"), activeFlag(),
			},
			Visible: "is_active",
			OrderBy: []string{"created_at DESC"},
			Limits:  &Limits{Default: 20, Max: 50},
		},
		Reviews: &Schema{
			Name:    "reviews",
			Table:   "reviews",
			Fields:  reviewFields("tour_id", "guide_id"),
			Visible: "is_approved",
			OrderBy: []string{"created_at DESC"},
			Limits:  &Limits{Default: 6, Max: 24},
		},
		Bookings: &Schema{
			Name:  "bookings",
			Table: "bookings",
			Fields: bookingFields(
				"guide_id", "tour_id",
				"preferred_start_date", "preferred_end_date", KindDate,
			),
			OrderBy: []string{"created_at DESC"},
		},
	}
}
