package telegram

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/gotd/td/tg"

	"github.com/santaclaude2025/tgstats/pkg/logger"
	"github.com/santaclaude2025/tgstats/pkg/types"
)

// Dialogs pages through the dialog list with messages.getDialogs
func (c *Client) Dialogs(ctx context.Context) iter.Seq2[types.Dialog, error] {
	return func(yield func(types.Dialog, error) bool) {
		req := &tg.MessagesGetDialogsRequest{
			OffsetPeer: &tg.InputPeerEmpty{},
			Limit:      pageSize,
		}
		seen := make(map[peerKey]bool)

		for {
			res, err := c.api.MessagesGetDialogs(ctx, req)
			if err != nil {
				yield(types.Dialog{}, fmt.Errorf("failed to get dialogs: %w", err))
				return
			}

			page, more := newDialogPage(res)
			var last *tg.Dialog
			for _, dc := range page.dialogs {
				d, ok := dc.(*tg.Dialog)
				if !ok {
					continue
				}
				last = d

				key := keyOf(d.Peer)
				if seen[key] {
					continue
				}
				seen[key] = true

				dialog, ok := page.dialog(d, c.loc)
				if !ok {
					logger.Debug("Skipping dialog with unknown peer %v", key)
					continue
				}
				if !yield(dialog, nil) {
					return
				}
			}

			if !more || last == nil || len(page.dialogs) < pageSize {
				return
			}

			req.OffsetID = last.TopMessage
			req.OffsetDate = page.topDate(last)
			req.OffsetPeer = page.inputPeer(last.Peer)
		}
	}
}

type peerKey struct {
	kind byte
	id   int64
}

func keyOf(p tg.PeerClass) peerKey {
	switch p := p.(type) {
	case *tg.PeerUser:
		return peerKey{'u', p.UserID}
	case *tg.PeerChat:
		return peerKey{'c', p.ChatID}
	case *tg.PeerChannel:
		return peerKey{'h', p.ChannelID}
	default:
		return peerKey{}
	}
}

type messageKey struct {
	peer peerKey
	id   int
}

// dialogPage indexes one getDialogs response
type dialogPage struct {
	dialogs  []tg.DialogClass
	users    map[int64]*tg.User
	chats    map[int64]*tg.Chat
	channels map[int64]*tg.Channel
	dates    map[messageKey]int
}

// newDialogPage indexes res. more is false when the response holds the
// complete list.
func newDialogPage(res tg.MessagesDialogsClass) (page dialogPage, more bool) {
	var messages []tg.MessageClass
	var users []tg.UserClass
	var chats []tg.ChatClass

	switch r := res.(type) {
	case *tg.MessagesDialogs:
		page.dialogs, messages, users, chats = r.Dialogs, r.Messages, r.Users, r.Chats
	case *tg.MessagesDialogsSlice:
		page.dialogs, messages, users, chats = r.Dialogs, r.Messages, r.Users, r.Chats
		more = true
	}

	page.users = make(map[int64]*tg.User, len(users))
	for _, uc := range users {
		if u, ok := uc.(*tg.User); ok {
			page.users[u.ID] = u
		}
	}

	page.chats = make(map[int64]*tg.Chat)
	page.channels = make(map[int64]*tg.Channel)
	for _, cc := range chats {
		switch ch := cc.(type) {
		case *tg.Chat:
			page.chats[ch.ID] = ch
		case *tg.Channel:
			page.channels[ch.ID] = ch
		}
	}

	page.dates = make(map[messageKey]int, len(messages))
	for _, mc := range messages {
		switch m := mc.(type) {
		case *tg.Message:
			page.dates[messageKey{keyOf(m.PeerID), m.ID}] = m.Date
		case *tg.MessageService:
			page.dates[messageKey{keyOf(m.PeerID), m.ID}] = m.Date
		}
	}

	return page, more
}

func (p dialogPage) topDate(d *tg.Dialog) int {
	return p.dates[messageKey{keyOf(d.Peer), d.TopMessage}]
}

// activityDate is the date the dialog list is ordered by: the newer of the
// top message and a saved draft.
func (p dialogPage) activityDate(d *tg.Dialog) int {
	date := p.topDate(d)
	if draft, ok := d.Draft.(*tg.DraftMessage); ok {
		date = max(date, draft.Date)
	}
	return date
}

func (p dialogPage) dialog(d *tg.Dialog, loc *time.Location) (types.Dialog, bool) {
	var peer types.Peer

	switch pc := d.Peer.(type) {
	case *tg.PeerUser:
		u, ok := p.users[pc.UserID]
		if !ok {
			return types.Dialog{}, false
		}
		peer = userPeer(u)
	case *tg.PeerChat:
		peer = types.Peer{Kind: types.PeerGroup, ID: pc.ChatID}
		if ch, ok := p.chats[pc.ChatID]; ok {
			peer.FirstName = ch.Title
		}
	case *tg.PeerChannel:
		peer = types.Peer{Kind: types.PeerGroup, ID: pc.ChannelID}
		if ch, ok := p.channels[pc.ChannelID]; ok {
			peer.AccessHash = ch.AccessHash
			peer.FirstName = ch.Title
			peer.Username = ch.Username
		}
	default:
		return types.Dialog{}, false
	}

	return types.Dialog{
		Peer:         peer,
		LastActivity: time.Unix(int64(p.activityDate(d)), 0).In(loc),
		Pinned:       d.Pinned,
	}, true
}

func (p dialogPage) inputPeer(pc tg.PeerClass) tg.InputPeerClass {
	switch pc := pc.(type) {
	case *tg.PeerUser:
		if u, ok := p.users[pc.UserID]; ok {
			return &tg.InputPeerUser{UserID: u.ID, AccessHash: u.AccessHash}
		}
	case *tg.PeerChat:
		return &tg.InputPeerChat{ChatID: pc.ChatID}
	case *tg.PeerChannel:
		if ch, ok := p.channels[pc.ChannelID]; ok {
			return &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}
		}
	}
	return &tg.InputPeerEmpty{}
}

// userPeer tags a user as human, bot or the system-notifications account
func userPeer(u *tg.User) types.Peer {
	peer := types.Peer{
		Kind:       types.PeerHuman,
		ID:         u.ID,
		AccessHash: u.AccessHash,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Username:   u.Username,
	}

	switch {
	case u.ID == types.ServiceNotificationsID:
		peer.Kind = types.PeerSystem
	case u.Bot:
		peer.Kind = types.PeerBot
	}
	return peer
}
