package identity

import (
	"errors"
	"fmt"

	"github.com/grdn/statfuse/internal/domain/model"
)

// ErrAmbiguousIdentity is the sentinel kind for resolution failures
// where more than one registered player fits an observation. Callers
// use errors.Is against it and errors.As for the detail type.
var ErrAmbiguousIdentity = errors.New("ambiguous identity")

// AmbiguousIdentityError reports an observation that matched more than
// one canonical player and could not be disambiguated by team and
// season. The resolver fails loudly instead of guessing.
type AmbiguousIdentityError struct {
	Source     model.Source
	NativeID   string
	Name       string
	Candidates []model.PlayerID
}

func (e *AmbiguousIdentityError) Error() string {
	return fmt.Sprintf("ambiguous identity: %q (%s:%s) matches %d players",
		e.Name, e.Source, e.NativeID, len(e.Candidates))
}

func (e *AmbiguousIdentityError) Unwrap() error { return ErrAmbiguousIdentity }
