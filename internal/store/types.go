package store

import (
	"strings"

	"shareit-backend/internal/apperror"
)

// ItemPatch is a partial update of an item. Nil fields are left unchanged.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Available == nil
}

// columns maps the set fields to their column names.
func (p ItemPatch) columns() map[string]any {
	cols := make(map[string]any, 3)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Available != nil {
		cols["is_available"] = *p.Available
	}
	return cols
}

// UserPatch is a partial update of a user. Nil fields are left unchanged.
type UserPatch struct {
	Name  *string
	Email *string
}

// Validate rejects blank values for the fields being set.
func (p UserPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return apperror.Validation("User's name cannot be empty")
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) == "" {
		return apperror.Validation("User's email cannot be empty")
	}
	return nil
}

func (p UserPatch) columns() map[string]any {
	cols := make(map[string]any, 2)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	return cols
}
