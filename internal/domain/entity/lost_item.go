package entity

import (
	"errors"
	"time"
)

// LostItemStatus is the workflow status of a lost & found item
type LostItemStatus string

const (
	ItemFound     LostItemStatus = "FOUND"
	ItemLost      LostItemStatus = "LOST"
	ItemClaimed   LostItemStatus = "CLAIMED"
	ItemSuspended LostItemStatus = "SUSPENDED"
	ItemClosed    LostItemStatus = "CLOSED"
	ItemArchived  LostItemStatus = "ARCHIVED"
)

// CategoryBags is the category that uses baggage numbering
const CategoryBags = "Bags/Luggage"

var ErrInvalidTransition = errors.New("invalid status transition")

var itemTransitions = map[LostItemStatus][]LostItemStatus{
	ItemFound:     {ItemClaimed, ItemSuspended, ItemArchived, ItemClosed},
	ItemLost:      {ItemClaimed, ItemSuspended, ItemArchived, ItemClosed},
	ItemSuspended: {ItemClaimed, ItemArchived, ItemClosed},
	ItemClaimed:   {ItemArchived, ItemClosed},
	ItemArchived:  {ItemClosed},
}

// CanTransitionTo reports whether the workflow allows moving to next
func (s LostItemStatus) CanTransitionTo(next LostItemStatus) bool {
	for _, allowed := range itemTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Address is a postal address recorded on claim
type Address struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
}

// LostItem is one lost or found article
type LostItem struct {
	ID              string                 `json:"id" bson:"_id"`
	ItemNumber      string                 `json:"itemNumber" bson:"itemNumber"`
	FileReference   string                 `json:"fileReference" bson:"fileReference"`
	Category        string                 `json:"category" bson:"category"`
	Description     string                 `json:"description" bson:"description"`
	Notes           string                 `json:"notes,omitempty" bson:"notes,omitempty"`
	LocationFound   string                 `json:"locationFound" bson:"locationFound"`
	FoundAt         time.Time              `json:"foundAt" bson:"foundAt"`
	FoundBy         string                 `json:"foundBy" bson:"foundBy"`
	Status          LostItemStatus         `json:"status" bson:"status"`
	FlightNumber    string                 `json:"flightNumber,omitempty" bson:"flightNumber,omitempty"`
	StorageLocation string                 `json:"storageLocation,omitempty" bson:"storageLocation,omitempty"`
	PassengerName   string                 `json:"passengerName,omitempty" bson:"passengerName,omitempty"`
	ContactPhone    string                 `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`
	PhoneValidated  bool                   `json:"phoneValidated" bson:"phoneValidated"`
	ContactEmail    string                 `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	ClaimantName    string                 `json:"claimantName,omitempty" bson:"claimantName,omitempty"`
	ClaimantPhones  []string               `json:"claimantPhones,omitempty" bson:"claimantPhones,omitempty"`
	ClaimedAt       *time.Time             `json:"claimedAt,omitempty" bson:"claimedAt,omitempty"`
	Address         *Address               `json:"address,omitempty" bson:"address,omitempty"`
	Baggage         *BaggageIdentification `json:"baggage,omitempty" bson:"baggage,omitempty"`
	CreatedAt       time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt" bson:"updatedAt"`
}

// LostItemFilter narrows a lost item listing; zero fields match everything
type LostItemFilter struct {
	Status        LostItemStatus
	FileReference string
	Category      string
	Query         string
}
