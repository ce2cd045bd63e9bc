package services

import (
	"errors"
	"fmt"

	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"gorm.io/gorm"
)

// storageError turns a missing row into a NotFoundError for resource and
// wraps anything else with action. Domain errors pass through unchanged.
func storageError(err error, resource, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &apierrors.NotFoundError{Resource: resource}
	}

	var (
		validation *apierrors.ValidationError
		notFound   *apierrors.NotFoundError
		conflict   *apierrors.ConflictError
	)
	if errors.As(err, &validation) || errors.As(err, &notFound) || errors.As(err, &conflict) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
