// Package services contains server-side business logic. Services sit between
// the HTTP handlers and the repositories: they enforce per-user scoping,
// ownership rules and side effects such as domain events.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/categories"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
)

// ConflictError reports a uniqueness violation. Message is shown to the
// caller as is; errors.Is(err, common.ErrorAlreadyExists) holds.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
func (e *ConflictError) Unwrap() error { return common.ErrorAlreadyExists }

// categoryPolicy decides whether a task may point at a category.
type categoryPolicy struct {
	categories categories.Repository
	strict     bool
	log        logging.Logger
}

// check verifies that categoryID exists. A category owned by somebody else
// is rejected in strict mode and only logged otherwise. field names the
// input field reported in the validation error.
func (p categoryPolicy) check(ctx context.Context, userID, categoryID int64, field string) error {
	c, err := p.categories.Get(ctx, categoryID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return validation.NewError(field, "category does not exist")
		}
		return fmt.Errorf("error loading category: %w", err)
	}

	if c.UserID != userID {
		if p.strict {
			return validation.NewError(field, "category does not belong to the current user")
		}
		p.log.Warn(ctx, "task references a category outside the caller's scope",
			"user_id", userID, "category_id", categoryID, "owner_id", c.UserID)
	}
	return nil
}
