package resolver

import (
	"errors"
	"fmt"

	"github.com/kkdai/youtube/v2"
)

// ErrVideoUnavailable marks videos the delegate cannot serve at all: private,
// removed, region-locked, or login-gated. Items failing with it are reported
// as unavailable rather than as pipeline errors.
var ErrVideoUnavailable = errors.New("video unavailable")

func classifyResolveError(err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %v", ErrVideoUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	switch {
	case errors.Is(err, youtube.ErrVideoPrivate),
		errors.Is(err, youtube.ErrLoginRequired),
		errors.Is(err, youtube.ErrNotPlayableInEmbed):
		return true
	}
	var statusErr *youtube.ErrPlayabiltyStatus
	return errors.As(err, &statusErr)
}
