package models

import (
	"encoding/json"
	"fmt"
)

// VoteState представляет голос текущего пользователя за вопрос или ответ.
// Нулевое значение - VoteNone.
type VoteState int

const (
	VoteNone VoteState = iota
	VoteUp
	VoteDown
)

// Wire values used by the forum API
const (
	voteUpWire   = "upvote"
	voteDownWire = "downvote"
)

// String returns the wire representation ("upvote", "downvote" or "" for none)
func (v VoteState) String() string {
	switch v {
	case VoteUp:
		return voteUpWire
	case VoteDown:
		return voteDownWire
	default:
		return ""
	}
}

// IsDirection reports whether v is a votable direction (Up or Down)
func (v VoteState) IsDirection() bool {
	return v == VoteUp || v == VoteDown
}

// ParseVoteState parses the wire representation. Empty string and "none" map to VoteNone.
func ParseVoteState(s string) (VoteState, error) {
	switch s {
	case "", "none":
		return VoteNone, nil
	case voteUpWire, "up":
		return VoteUp, nil
	case voteDownWire, "down":
		return VoteDown, nil
	default:
		return VoteNone, fmt.Errorf("unknown vote state %q", s)
	}
}

// MarshalJSON encodes VoteNone as null, matching the API's user_vote field
func (v VoteState) MarshalJSON() ([]byte, error) {
	if v == VoteNone {
		return []byte("null"), nil
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON accepts null or a wire string
func (v *VoteState) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = VoteNone
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode vote state: %w", err)
	}

	parsed, err := ParseVoteState(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// EntityKind различает сущности, за которые можно голосовать
type EntityKind string

const (
	KindQuestion EntityKind = "question"
	KindAnswer   EntityKind = "answer"
)

// Valid reports whether k is a known kind
func (k EntityKind) Valid() bool {
	return k == KindQuestion || k == KindAnswer
}

// Plural returns the API collection name ("questions", "answers")
func (k EntityKind) Plural() string {
	return string(k) + "s"
}

// ParseEntityKind accepts singular or plural forms
func ParseEntityKind(s string) (EntityKind, error) {
	switch s {
	case "question", "questions", "q":
		return KindQuestion, nil
	case "answer", "answers", "a":
		return KindAnswer, nil
	default:
		return "", fmt.Errorf("unknown entity kind %q: use question or answer", s)
	}
}

// Votable - вопрос или ответ с агрегированным счётчиком голосов.
// VoteCount поддерживается как накопительный итог: инициализируется с сервера
// и корректируется дельтами, никогда не выводится из UserVote.
type Votable struct {
	ID        string     `json:"id"`
	Kind      EntityKind `json:"kind"`
	Title     string     `json:"title,omitempty"`
	VoteCount int        `json:"vote_count"`
	UserVote  VoteState  `json:"user_vote"`
}

// CacheKey returns the id used by the cache and the mutation guard.
// Questions and answers live in separate id spaces on the server.
func (v Votable) CacheKey() string {
	return VotableKey(v.Kind, v.ID)
}

// VotableKey builds a cache key for the given kind and id
func VotableKey(kind EntityKind, id string) string {
	return string(kind) + ":" + id
}
