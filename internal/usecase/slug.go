package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"venue-booking/pkg/utils"

	"github.com/google/uuid"
)

// SlugLookup reports whether a candidate slug is already taken.
type SlugLookup func(ctx context.Context, slug string) (bool, error)

const (
	slugRequesterPrefixLen = 8
	slugSuffixLen          = 6
	slugFallbackSuffixLen  = 12
)

// slugCandidate builds one seeded candidate: requester prefix, the start
// instant down to the minute, and a random hex suffix.
func slugCandidate(requesterID uuid.UUID, startAt time.Time) string {
	prefix := strings.ReplaceAll(requesterID.String(), "-", "")[:slugRequesterPrefixLen]
	return fmt.Sprintf("%s-%s-%s",
		prefix,
		startAt.UTC().Format("200601021504"),
		utils.RandomHex(slugSuffixLen),
	)
}

// AllocateSlug returns a unique slug for a new booking. Collisions get a
// fresh random suffix up to maxAttempts tries; after that the seeded shape
// is abandoned for a purely random fallback, checked the same way. The slug
// column keeps a unique index as the last line of defense, so a lost race
// here surfaces as an IntegrityError from the insert.
func AllocateSlug(ctx context.Context, requesterID uuid.UUID, startAt time.Time, maxAttempts int, taken SlugLookup) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := slugCandidate(requesterID, startAt)
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}

	fallback := "booking-" + utils.RandomHex(slugFallbackSuffixLen)
	exists, err := taken(ctx, fallback)
	if err != nil {
		return "", fmt.Errorf("check slug %s: %w", fallback, err)
	}
	if exists {
		// 48 bits of randomness colliding twice in a row is not a
		// retry-worthy situation.
		return "", fmt.Errorf("slug space exhausted for requester %s", requesterID.String())
	}
	return fallback, nil
}

// uniqueSuffixed appends -2, -3, ... to a base slug until a free name is
// found. Used by the duplicate repair pass.
func uniqueSuffixed(ctx context.Context, base string, taken SlugLookup) (string, error) {
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
}
