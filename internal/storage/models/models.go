package models

import "time"

// Policy status values.
const (
	StatusNew            = "New"
	StatusUpdated        = "Updated"
	StatusActionRequired = "Action Required"
)

// PolicyRecord is one government notification with its citizen-facing
// summaries and missing-information flags. NotificationNumber is the natural
// key when the source publishes one; records without it dedup on
// (Title, SourceURL).
type PolicyRecord struct {
	ID                 string
	Title              string
	Ministry           string
	NotificationNumber string
	PublicationDate    time.Time
	EffectiveDate      *time.Time
	OriginalText       string
	SummaryEnglish     string
	SummaryHindi       string
	WhatChanged        string
	WhoAffected        string
	WhatToDo           string
	SourceURL          string
	GazetteType        string
	Status             string
	MissingDates       bool
	MissingOfficerInfo bool
	MissingURLs        bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PolicyCard is the JSON shape served to clients.
type PolicyCard struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Ministry           string          `json:"ministry"`
	NotificationNumber string          `json:"notification_number,omitempty"`
	PublicationDate    string          `json:"publication_date"`
	EffectiveDate      string          `json:"effective_date,omitempty"`
	Summary            PolicySummary   `json:"summary"`
	Details            PolicyDetails   `json:"details"`
	SourceURL          string          `json:"source_url"`
	GazetteType        string          `json:"gazette_type"`
	Status             string          `json:"status"`
	OperationalGaps    OperationalGaps `json:"operational_gaps"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

type PolicySummary struct {
	English string `json:"english"`
	Hindi   string `json:"hindi"`
}

type PolicyDetails struct {
	WhatChanged string `json:"what_changed"`
	WhoAffected string `json:"who_affected"`
	WhatToDo    string `json:"what_to_do"`
}

type OperationalGaps struct {
	MissingDates       bool `json:"missing_dates"`
	MissingOfficerInfo bool `json:"missing_officer_info"`
	MissingURLs        bool `json:"missing_urls"`
}

// Card renders the API shape of a policy record.
func (p *PolicyRecord) Card() PolicyCard {
	card := PolicyCard{
		ID:                 p.ID,
		Title:              p.Title,
		Ministry:           p.Ministry,
		NotificationNumber: p.NotificationNumber,
		PublicationDate:    p.PublicationDate.Format(time.RFC3339),
		Summary:            PolicySummary{English: p.SummaryEnglish, Hindi: p.SummaryHindi},
		Details:            PolicyDetails{WhatChanged: p.WhatChanged, WhoAffected: p.WhoAffected, WhatToDo: p.WhatToDo},
		SourceURL:          p.SourceURL,
		GazetteType:        p.GazetteType,
		Status:             p.Status,
		OperationalGaps: OperationalGaps{
			MissingDates:       p.MissingDates,
			MissingOfficerInfo: p.MissingOfficerInfo,
			MissingURLs:        p.MissingURLs,
		},
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if p.EffectiveDate != nil {
		card.EffectiveDate = p.EffectiveDate.Format(time.RFC3339)
	}
	return card
}

// Complaint validation states.
const (
	ValidationPending = "pending"
	ValidationValid   = "valid"
	ValidationInvalid = "invalid"
)

// Complaint is a citizen complaint about a government webpage, the entry
// point of the RTI workflow.
type Complaint struct {
	ID                string
	URL               string
	ComplaintText     string
	IsGovernmentURL   bool
	ValidationStatus  string
	ValidationReason  string
	Eligible          bool
	EligibilityScore  int
	EligibilityReason string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RTIRequest is the drafted application for a complaint. One per complaint.
type RTIRequest struct {
	ID              string
	ComplaintID     string
	RTIText         string
	ComplianceScore int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

type Idea struct {
	ID        string
	UserID    string
	Content   string
	CreatedAt time.Time

	// Filled by queries, not stored.
	AuthorEmail   string
	AuthorName    string
	Score         int
	CommentsCount int
}

type Vote struct {
	UserID    string
	IdeaID    string
	Value     int
	CreatedAt time.Time
}

type Comment struct {
	ID        string
	IdeaID    string
	UserID    string
	Content   string
	CreatedAt time.Time

	AuthorEmail string
	AuthorName  string
}

// MinistryCount is one row of the ministries listing.
type MinistryCount struct {
	Name        string `json:"name"`
	PolicyCount int    `json:"policy_count"`
}

// PolicyStats is the aggregate snapshot served by the stats endpoint.
type PolicyStats struct {
	TotalPolicies    int     `json:"total_policies"`
	RecentPolicies   int     `json:"recent_policies"`
	PoliciesWithGaps int     `json:"policies_with_gaps"`
	MinistryCount    int     `json:"ministry_count"`
	GapPercentage    float64 `json:"gap_percentage"`
}
