// Package identity defines the member@team compound reference used to
// address inboxes and task claimants. Identities are resolved lazily:
// parsing one never consults the team registry.
package identity

import (
	"strings"

	"github.com/openclaw/agent-teams/internal/errors"
)

// Identity references one member within one team.
type Identity struct {
	Member string
	Team   string
}

// Parse splits "member@team" into an Identity. The split happens on the
// first '@'; both parts must be non-empty and safe to use as a single
// path component.
func Parse(s string) (Identity, error) {
	member, team, ok := strings.Cut(s, "@")
	if !ok {
		return Identity{}, errors.NewMalformedIdentityError(s)
	}
	id := Identity{Member: member, Team: team}
	if err := id.Validate(); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Validate checks that both parts are usable as path components.
// Member and team names become file and directory names under the data
// root, so anything that could traverse outside its own inbox directory
// is rejected. Identities built directly from struct literals must pass
// through here before touching storage.
func (id Identity) Validate() error {
	if !validPart(id.Member) || !validPart(id.Team) {
		return errors.NewMalformedIdentityError(id.String())
	}
	return nil
}

// validPart rejects names that are empty, contain a path separator or
// '@', are a dot directory, or start with '.' (cursor files are
// dot-prefixed).
func validPart(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	if strings.ContainsAny(s, "/\\@") {
		return false
	}
	if strings.HasPrefix(s, ".") {
		return false
	}
	return true
}

// String re-joins the identity as "member@team".
func (id Identity) String() string {
	return id.Member + "@" + id.Team
}

// IsZero reports whether the identity is unset.
func (id Identity) IsZero() bool {
	return id.Member == "" && id.Team == ""
}
