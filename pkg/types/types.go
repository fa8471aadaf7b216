package types

import (
	"strings"
	"time"
)

// ServiceNotificationsID is the platform's official system-notifications account
const ServiceNotificationsID int64 = 777000

// Direction tells whether a message was received or sent by the account
type Direction int

const (
	Incoming Direction = iota
	Outgoing
)

func (d Direction) String() string {
	switch d {
	case Incoming:
		return "incoming"
	case Outgoing:
		return "outgoing"
	default:
		return "unknown"
	}
}

// Message is a single fetched message. It is never mutated after the fetch.
type Message struct {
	ID        int
	Timestamp time.Time
	Direction Direction
	Text      string // empty for non-text payloads
	Media     string // short description of a non-text payload, if known
}

// HasText reports whether the message carries text that counts towards statistics
func (m Message) HasText() bool {
	return m.Text != ""
}

// PeerKind is the tag of a conversation peer
type PeerKind int

const (
	PeerHuman PeerKind = iota
	PeerGroup
	PeerBot
	PeerSystem
)

func (k PeerKind) String() string {
	switch k {
	case PeerHuman:
		return "human"
	case PeerGroup:
		return "group"
	case PeerBot:
		return "bot"
	case PeerSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Peer is the other side of a dialog
type Peer struct {
	Kind       PeerKind
	ID         int64
	AccessHash int64
	FirstName  string
	LastName   string
	Username   string
}

// DisplayName returns "First Last" with empty parts dropped
func (p Peer) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Dialog is one entry of the account's dialog list
type Dialog struct {
	Peer         Peer
	LastActivity time.Time
	Pinned       bool
}

// Self describes the authorized account
type Self struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}
