// Package team implements the team registry: durable team definitions with
// idempotent create-or-merge semantics. A team's member set only grows
// through merge; re-creating an existing team never wipes members.
package team

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/openclaw/agent-teams/internal/errors"
	"github.com/openclaw/agent-teams/internal/storage"
)

// Team is the durable definition of one team.
type Team struct {
	Name    string    `json:"name"`
	Members []string  `json:"members"`
	Created time.Time `json:"created"`
}

// HasMember reports whether name is in the team's member set.
func (t *Team) HasMember(name string) bool {
	for _, m := range t.Members {
		if m == name {
			return true
		}
	}
	return false
}

// Registry manages team definitions on top of a storage.Store.
type Registry struct {
	store *storage.Store
}

// NewRegistry creates a Registry backed by the given store.
func NewRegistry(store *storage.Store) *Registry {
	return &Registry{store: store}
}

// configKey returns the storage key for a team's config record.
func configKey(team string) string {
	return team + "/config.json"
}

// lockName returns the lock protecting a team's config record.
func lockName(team string) string {
	return team + "/config"
}

// ValidateName checks that a team name is usable. Team names become
// directory names under the data root, so path-unsafe names are rejected,
// as is '@' which would make identities ambiguous.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.NewInvalidTeamError(name, "name is empty")
	case strings.ContainsAny(name, "/\\"):
		return errors.NewInvalidTeamError(name, "name contains a path separator")
	case strings.Contains(name, "@"):
		return errors.NewInvalidTeamError(name, "name contains '@'")
	case name == "." || name == "..":
		return errors.NewInvalidTeamError(name, "name is a reserved path")
	case strings.HasPrefix(name, "."):
		return errors.NewInvalidTeamError(name, "name starts with '.'")
	}
	return nil
}

// ValidateMember checks that a member name is usable. Member names become
// inbox file names under the team directory, so the same path-safety rules
// apply as for team names; '@' is rejected because it separates member from
// team in identities.
func ValidateMember(name string) error {
	switch {
	case name == "":
		return errors.NewInvalidMemberError(name, "name is empty")
	case strings.ContainsAny(name, "/\\"):
		return errors.NewInvalidMemberError(name, "name contains a path separator")
	case strings.Contains(name, "@"):
		return errors.NewInvalidMemberError(name, "name contains '@'")
	case name == "." || name == "..":
		return errors.NewInvalidMemberError(name, "name is a reserved path")
	case strings.HasPrefix(name, "."):
		return errors.NewInvalidMemberError(name, "name starts with '.'")
	}
	return nil
}

// CreateOrMerge creates the team if it does not exist, or merges the given
// members into the existing member set. Merging is a union: existing
// members are never removed, duplicates are dropped, and new members are
// appended in the order given. The whole read-merge-write runs under the
// team's lock, so concurrent creators cannot lose each other's members.
func (r *Registry) CreateOrMerge(name string, members []string) (*Team, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	for _, m := range members {
		if m == "" {
			continue
		}
		if err := ValidateMember(m); err != nil {
			return nil, err
		}
	}

	var result *Team
	err := r.store.WithLock(lockName(name), func() error {
		existing, err := r.load(name)
		if err != nil && !errors.Is(err, errors.ErrTeamNotFound) {
			return err
		}

		if existing == nil {
			existing = &Team{
				Name:    name,
				Members: []string{},
				Created: time.Now().UTC(),
			}
		}

		for _, m := range members {
			if m != "" && !existing.HasMember(m) {
				existing.Members = append(existing.Members, m)
			}
		}

		if err := r.save(existing); err != nil {
			return err
		}
		result = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddMember merges a single member into the team.
// Returns ErrTeamNotFound if the team does not exist.
func (r *Registry) AddMember(name, member string) (*Team, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateMember(member); err != nil {
		return nil, err
	}

	var result *Team
	err := r.store.WithLock(lockName(name), func() error {
		t, err := r.load(name)
		if err != nil {
			return err
		}
		if member != "" && !t.HasMember(member) {
			t.Members = append(t.Members, member)
			if err := r.save(t); err != nil {
				return err
			}
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveMember removes a member from the team and deletes their inbox and
// cursor. Removing a member that is not in the team is a no-op.
// Returns ErrTeamNotFound if the team does not exist.
func (r *Registry) RemoveMember(name, member string) (*Team, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var result *Team
	err := r.store.WithLock(lockName(name), func() error {
		t, err := r.load(name)
		if err != nil {
			return err
		}

		kept := t.Members[:0]
		for _, m := range t.Members {
			if m != member {
				kept = append(kept, m)
			}
		}
		t.Members = kept

		if err := r.save(t); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Inbox and cursor live under their own keys; stale ones are harmless
	// if this cleanup races a concurrent send.
	for _, key := range []string{
		name + "/inboxes/" + member + ".jsonl",
		name + "/inboxes/." + member + ".cursor",
	} {
		if err := r.store.Delete(key); err != nil && !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
	}

	return result, nil
}

// Delete removes a team and all its state (config, inboxes, tasks).
// Returns true if the team existed.
func (r *Registry) Delete(name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}

	exists, err := r.store.Exists(configKey(name))
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := r.store.RemoveAll(name); err != nil {
		return false, err
	}
	return true, nil
}

// Info returns one team's definition.
// Returns ErrTeamNotFound if the team does not exist.
func (r *Registry) Info(name string) (*Team, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return r.load(name)
}

// List returns all teams sorted by name.
func (r *Registry) List() ([]*Team, error) {
	keys, err := r.store.List("")
	if err != nil {
		return nil, err
	}

	var teams []*Team
	for _, key := range keys {
		parts := strings.SplitN(key, "/", 2)
		if len(parts) != 2 || parts[1] != "config.json" {
			continue
		}
		t, err := r.load(parts[0])
		if err != nil {
			if errors.Is(err, errors.ErrTeamNotFound) {
				continue
			}
			return nil, err
		}
		teams = append(teams, t)
	}

	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

// load reads a team's config record.
func (r *Registry) load(name string) (*Team, error) {
	data, err := r.store.Read(configKey(name))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.ErrTeamNotFound
		}
		return nil, err
	}

	var t Team
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, errors.NewStorageError("parse team config for "+name, err)
	}
	if t.Members == nil {
		t.Members = []string{}
	}
	return &t, nil
}

// save writes a team's config record atomically.
func (r *Registry) save(t *Team) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return errors.NewStorageError("marshal team config for "+t.Name, err)
	}
	return r.store.Write(configKey(t.Name), data)
}
