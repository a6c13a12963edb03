// Package collection implements the user-partitioned product collections
// (cart, wishlist) that share one process-wide state store.
package collection

import (
	"encoding/json"

	"github.com/angelmondragon/storefront/internal/products"
)

// Entry is a product stamped with the user that added it.
type Entry struct {
	products.Product
	OwnerUserID int `json:"userId"`
}

// UnmarshalJSON decodes the product fields and the owner. Product has its own
// decoder, which would otherwise be promoted and drop userId.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var owner struct {
		OwnerUserID int `json:"userId"`
	}
	if err := json.Unmarshal(data, &owner); err != nil {
		return err
	}
	var product products.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return err
	}
	e.Product = product
	e.OwnerUserID = owner.OwnerUserID
	return nil
}

// Outcome names the result of a collection transition.
type Outcome string

const (
	OutcomeUnauthenticated Outcome = "unauthenticated"
	OutcomeRejected        Outcome = "rejected"
	OutcomeDuplicate       Outcome = "duplicate"
	OutcomeAdded           Outcome = "added"
	OutcomeCleared         Outcome = "cleared"
)

// Validator decides whether a product may enter a collection.
type Validator func(product *products.Product) bool

// Add returns items with product appended for owner, or items unchanged when
// owner is zero, validate rejects the product, or (id, owner) already exists.
// The input slice is never modified.
func Add(items []Entry, owner int, product *products.Product, validate Validator) ([]Entry, Outcome) {
	if owner == 0 {
		return items, OutcomeUnauthenticated
	}
	if product == nil || (validate != nil && !validate(product)) {
		return items, OutcomeRejected
	}
	if indexOf(items, product.ID, owner) >= 0 {
		return items, OutcomeDuplicate
	}

	next := make([]Entry, len(items), len(items)+1)
	copy(next, items)
	next = append(next, Entry{Product: *product, OwnerUserID: owner})
	return next, OutcomeAdded
}

// Clear returns the entries not owned by owner in their original order, plus
// the number removed. A zero owner clears nothing.
func Clear(items []Entry, owner int) ([]Entry, int) {
	if owner == 0 {
		return items, 0
	}
	kept := make([]Entry, 0, len(items))
	for _, entry := range items {
		if entry.OwnerUserID != owner {
			kept = append(kept, entry)
		}
	}
	return kept, len(items) - len(kept)
}

// OwnedBy returns the entries belonging to owner.
func OwnedBy(items []Entry, owner int) []Entry {
	out := make([]Entry, 0)
	if owner == 0 {
		return out
	}
	for _, entry := range items {
		if entry.OwnerUserID == owner {
			out = append(out, entry)
		}
	}
	return out
}

func indexOf(items []Entry, productID, owner int) int {
	for i, entry := range items {
		if entry.ID == productID && entry.OwnerUserID == owner {
			return i
		}
	}
	return -1
}
