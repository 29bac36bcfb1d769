package announce

import (
	"context"
	"errors"
	"testing"

	"oengusbot/internal/logx"
)

const testBotID = "bot-1"

// fakeChannel serves canned history pages keyed by the before-id cursor and
// records sent embeds.
type fakeChannel struct {
	pages   map[string][]Message
	pageErr error
	sent    []Embed
	sendErr error
	calls   []int // limits seen, to assert the configured page size
}

func (f *fakeChannel) SendEmbed(_ context.Context, e Embed) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, e)
	return nil
}

func (f *fakeChannel) MessagesBefore(_ context.Context, beforeID string, limit int) ([]Message, error) {
	f.calls = append(f.calls, limit)
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return f.pages[beforeID], nil
}

func botEmbedMsg(id, footer string) Message {
	return Message{ID: id, AuthorID: testBotID, Embeds: []EmbedInfo{{FooterText: footer}}}
}

func TestAnnouncedIDsFilters(t *testing.T) {
	ch := &fakeChannel{pages: map[string][]Message{
		"": {
			botEmbedMsg("9", "ID: 42"),
			{ID: "8", AuthorID: "someone-else", Embeds: []EmbedInfo{{FooterText: "ID: 7"}}},
			{ID: "7", AuthorID: testBotID}, // no embeds
			{ID: "6", AuthorID: testBotID, Embeds: []EmbedInfo{{FooterText: "ID: 1"}, {FooterText: "ID: 2"}}},
			// footer without an id, then an id overflowing int64: both skipped
			botEmbedMsg("5", "have a nice day"),
			botEmbedMsg("4", "ID: 99999999999999999999999999"),
		},
	}}

	ids, err := announcedIDs(context.Background(), ch, testBotID, 100, logx.Nop())
	if err != nil {
		t.Fatalf("announcedIDs: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected exactly one id, got %v", ids)
	}
	if _, ok := ids[42]; !ok {
		t.Fatalf("expected id 42 in %v", ids)
	}
}

func TestAnnouncedIDsPaginates(t *testing.T) {
	ch := &fakeChannel{pages: map[string][]Message{
		"":   {botEmbedMsg("30", "ID: 3"), botEmbedMsg("20", "ID: 2")},
		"20": {botEmbedMsg("10", "ID: 1")},
		// before "10" -> no entry -> empty page terminates the walk
	}}

	ids, err := announcedIDs(context.Background(), ch, testBotID, 2, logx.Nop())
	if err != nil {
		t.Fatalf("announcedIDs: %v", err)
	}
	for _, want := range []int64{1, 2, 3} {
		if _, ok := ids[want]; !ok {
			t.Fatalf("missing id %d in %v", want, ids)
		}
	}
	if len(ch.calls) != 3 {
		t.Fatalf("expected 3 page requests, got %d", len(ch.calls))
	}
	for _, limit := range ch.calls {
		if limit != 2 {
			t.Fatalf("expected page size 2, got %d", limit)
		}
	}
}

func TestAnnouncedIDsEmptyHistory(t *testing.T) {
	ch := &fakeChannel{pages: map[string][]Message{}}
	ids, err := announcedIDs(context.Background(), ch, testBotID, 100, logx.Nop())
	if err != nil {
		t.Fatalf("announcedIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty set, got %v", ids)
	}
}

func TestAnnouncedIDsPageError(t *testing.T) {
	ch := &fakeChannel{pageErr: errors.New("boom")}
	if _, err := announcedIDs(context.Background(), ch, testBotID, 100, logx.Nop()); err == nil {
		t.Fatal("expected error from failing history page")
	}
}
