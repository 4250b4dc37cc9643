// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Lead pipeline statuses.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// LeadStatuses returns every known lead status in pipeline order.
func LeadStatuses() []string {
	return []string{
		LeadStatusNew,
		LeadStatusContacted,
		LeadStatusQualified,
		LeadStatusConverted,
		LeadStatusLost,
	}
}

// IsValidLeadStatus checks if a lead status is valid.
func IsValidLeadStatus(s string) bool {
	for _, v := range LeadStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// BookingStatuses returns every known booking status in pipeline order.
func BookingStatuses() []string {
	return []string{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}
}

// IsValidBookingStatus checks if a booking status is valid.
func IsValidBookingStatus(s string) bool {
	for _, v := range BookingStatuses() {
		if v == s {
			return true
		}
	}
	return false
}
