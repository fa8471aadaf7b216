package telegram

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/gotd/td/tg"

	"github.com/santaclaude2025/tgstats/pkg/types"
)

// Messages pages backwards through a one-on-one history with messages.getHistory
func (c *Client) Messages(ctx context.Context, peer types.Peer, before time.Time) iter.Seq2[types.Message, error] {
	return func(yield func(types.Message, error) bool) {
		if peer.Kind == types.PeerGroup {
			yield(types.Message{}, fmt.Errorf("history of group %d is not supported", peer.ID))
			return
		}

		req := &tg.MessagesGetHistoryRequest{
			Peer:       &tg.InputPeerUser{UserID: peer.ID, AccessHash: peer.AccessHash},
			OffsetDate: int(before.Unix()),
			Limit:      pageSize,
		}

		for {
			res, err := c.api.MessagesGetHistory(ctx, req)
			if err != nil {
				yield(types.Message{}, fmt.Errorf("failed to get history of %d: %w", peer.ID, err))
				return
			}

			page := historyMessages(res)
			oldest := 0
			for _, mc := range page {
				msg, ok := convertMessage(mc, c.loc)
				if !ok {
					continue
				}
				if oldest == 0 || msg.ID < oldest {
					oldest = msg.ID
				}
				if !msg.Timestamp.Before(before) {
					continue
				}
				if !yield(msg, nil) {
					return
				}
			}

			if len(page) < pageSize || oldest == 0 {
				return
			}

			req.OffsetID = oldest
			req.OffsetDate = 0
		}
	}
}

func historyMessages(res tg.MessagesMessagesClass) []tg.MessageClass {
	switch r := res.(type) {
	case *tg.MessagesMessages:
		return r.Messages
	case *tg.MessagesMessagesSlice:
		return r.Messages
	case *tg.MessagesChannelMessages:
		return r.Messages
	default:
		return nil
	}
}

func convertMessage(mc tg.MessageClass, loc *time.Location) (types.Message, bool) {
	switch m := mc.(type) {
	case *tg.Message:
		msg := types.Message{
			ID:        m.ID,
			Timestamp: time.Unix(int64(m.Date), 0).In(loc),
			Direction: direction(m.Out),
			Text:      m.Message,
		}
		if m.Media != nil {
			msg.Media = describeMedia(m.Media)
		}
		return msg, true
	case *tg.MessageService:
		return types.Message{
			ID:        m.ID,
			Timestamp: time.Unix(int64(m.Date), 0).In(loc),
			Direction: direction(m.Out),
		}, true
	default:
		return types.Message{}, false
	}
}

func direction(out bool) types.Direction {
	if out {
		return types.Outgoing
	}
	return types.Incoming
}

// describeMedia names a non-text payload for the transcript
func describeMedia(media tg.MessageMediaClass) string {
	switch m := media.(type) {
	case *tg.MessageMediaPhoto:
		return "фото"
	case *tg.MessageMediaDocument:
		return describeDocument(m)
	case *tg.MessageMediaGeo, *tg.MessageMediaGeoLive, *tg.MessageMediaVenue:
		return "геопозиция"
	case *tg.MessageMediaContact:
		return "контакт"
	case *tg.MessageMediaPoll:
		return "опрос"
	case *tg.MessageMediaDice:
		return "кубик"
	case *tg.MessageMediaWebPage:
		return "ссылка"
	default:
		return "медиа"
	}
}

func describeDocument(m *tg.MessageMediaDocument) string {
	doc, ok := m.Document.(*tg.Document)
	if !ok {
		return "документ"
	}

	for _, attr := range doc.Attributes {
		switch a := attr.(type) {
		case *tg.DocumentAttributeSticker:
			return "стикер"
		case *tg.DocumentAttributeAnimated:
			return "GIF"
		case *tg.DocumentAttributeAudio:
			if a.Voice {
				return "голосовое сообщение"
			}
			return "аудио"
		case *tg.DocumentAttributeVideo:
			if a.RoundMessage {
				return "видеосообщение"
			}
			return "видео"
		}
	}
	return "документ"
}
