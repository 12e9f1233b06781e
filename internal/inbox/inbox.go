// Package inbox implements per-member message delivery: an append-only
// JSONL log per recipient plus a per-reader cursor marking the next unread
// position. Delivery order is append order; polling returns everything at
// or after the cursor and advances it atomically.
package inbox

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openclaw/agent-teams/internal/errors"
	"github.com/openclaw/agent-teams/internal/identity"
	"github.com/openclaw/agent-teams/internal/storage"
	"github.com/openclaw/agent-teams/internal/team"
)

// Service provides sending, broadcasting, and cursor-based polling.
type Service struct {
	store *storage.Store
	teams *team.Registry
}

// NewService creates a Service backed by the given store and team registry.
// The registry is only consulted for broadcast fan-out; direct sends are
// deliberately permissive and never check membership.
func NewService(store *storage.Store, teams *team.Registry) *Service {
	return &Service{store: store, teams: teams}
}

// inboxKey returns the storage key for a member's message log.
func inboxKey(teamName, member string) string {
	return teamName + "/inboxes/" + member + ".jsonl"
}

// cursorKey returns the storage key for a member's read cursor.
func cursorKey(teamName, member string) string {
	return teamName + "/inboxes/." + member + ".cursor"
}

// lockName returns the lock protecting one inbox and its cursor.
func lockName(teamName, member string) string {
	return teamName + "/inboxes/" + member
}

// Send constructs a Message with a fresh ID and timestamp and appends it
// to the recipient's inbox. The inbox is created on demand: sending to a
// member the registry has never seen succeeds silently.
//
// Sender and recipient must be in the same team. Both identities are
// validated as path components, since member and team names are spliced
// into the recipient's inbox key.
func (s *Service) Send(from, to identity.Identity, text string, msgType MessageType) (Message, error) {
	if err := from.Validate(); err != nil {
		return Message{}, err
	}
	if err := to.Validate(); err != nil {
		return Message{}, err
	}
	if from.Team != to.Team {
		return Message{}, fmt.Errorf("cross-team messaging not supported (%s -> %s)", from.Team, to.Team)
	}
	if msgType == "" {
		msgType = TypeMessage
	}

	msg := Message{
		ID:        uuid.NewString(),
		From:      from.Member,
		To:        to.Member,
		Team:      to.Team,
		Type:      msgType,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return Message{}, errors.NewStorageError("marshal message", err)
	}

	// The append itself is atomic under O_APPEND; the lock additionally
	// keeps large messages from interleaving with a concurrent poll's
	// cursor math on slow filesystems.
	err = s.store.WithLock(lockName(to.Team, to.Member), func() error {
		return s.store.Append(inboxKey(to.Team, to.Member), data)
	})
	if err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Broadcast sends text to every member of the sender's team except the
// sender. Messages are delivered in member order; a team with no other
// members yields an empty slice, not an error.
func (s *Service) Broadcast(from identity.Identity, text string, msgType MessageType) ([]Message, error) {
	if msgType == "" {
		msgType = TypeBroadcast
	}

	t, err := s.teams.Info(from.Team)
	if err != nil {
		return nil, err
	}

	msgs := make([]Message, 0, len(t.Members))
	for _, member := range t.Members {
		if member == from.Member {
			continue
		}
		msg, err := s.Send(from, identity.Identity{Member: member, Team: from.Team}, text, msgType)
		if err != nil {
			return msgs, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Poll returns all messages at or after the reader's cursor and advances
// the cursor past them. Reading the cursor, selecting the range, and
// writing the new cursor happen as one atomic unit under the inbox lock,
// so concurrent polls by the same identity never skip a message neither
// of them returned.
//
// A poll with no new messages returns an empty slice.
func (s *Service) Poll(id identity.Identity) ([]Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var newMsgs []Message
	err := s.store.WithLock(lockName(id.Team, id.Member), func() error {
		entries, err := s.readEntries(id.Team, id.Member)
		if err != nil {
			return err
		}
		if entries == nil {
			// No inbox yet; nothing to read, nothing to advance.
			return nil
		}

		cursor := s.readCursor(id.Team, id.Member)
		if cursor > len(entries) {
			cursor = len(entries)
		}

		for _, e := range entries[cursor:] {
			if e.valid {
				newMsgs = append(newMsgs, e.msg)
			}
		}
		return s.store.Write(cursorKey(id.Team, id.Member), []byte(strconv.Itoa(len(entries))))
	})
	if err != nil {
		return nil, err
	}
	if newMsgs == nil {
		newMsgs = []Message{}
	}
	return newMsgs, nil
}

// Peek returns the full inbox without advancing the cursor.
func (s *Service) Peek(id identity.Identity) ([]Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	entries, err := s.readEntries(id.Team, id.Member)
	if err != nil {
		return nil, err
	}
	messages := []Message{}
	for _, e := range entries {
		if e.valid {
			messages = append(messages, e.msg)
		}
	}
	return messages, nil
}

// Unread reports how many messages are at or after the cursor without
// advancing it.
func (s *Service) Unread(id identity.Identity) (int, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}
	entries, err := s.readEntries(id.Team, id.Member)
	if err != nil {
		return 0, err
	}
	cursor := s.readCursor(id.Team, id.Member)
	if cursor > len(entries) {
		cursor = len(entries)
	}
	unread := 0
	for _, e := range entries[cursor:] {
		if e.valid {
			unread++
		}
	}
	return unread, nil
}

// entry is one raw line of an inbox log. Malformed lines are kept in
// place with valid=false instead of being dropped: the cursor indexes
// raw lines, so dropping a line would shift every later index and
// desynchronize previously stored cursors.
type entry struct {
	msg   Message
	valid bool
}

// readEntries reads every line of a member's inbox log, one entry per
// non-empty line. Returns nil (not an error) if the inbox does not
// exist yet.
func (s *Service) readEntries(teamName, member string) ([]entry, error) {
	data, err := s.store.Read(inboxKey(teamName, member))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var entries []entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e entry
		if err := json.Unmarshal(line, &e.msg); err == nil {
			e.valid = true
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewStorageError("scan inbox for "+member+"@"+teamName, err)
	}
	return entries, nil
}

// readCursor reads a member's cursor, defaulting to 0 when absent or
// unparsable.
func (s *Service) readCursor(teamName, member string) int {
	data, err := s.store.Read(cursorKey(teamName, member))
	if err != nil {
		return 0
	}
	cursor, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || cursor < 0 {
		return 0
	}
	return cursor
}
