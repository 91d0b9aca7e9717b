package store

import (
	"context"
	"testing"
	"time"

	"greychat/models"
)

func text(body string) models.MessageBody {
	return models.MessageBody{Kind: models.MessageText, Text: body}
}

func TestAppendAndListConversation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", "alice@example.com")
	bob := env.seedUser(t, "bob", "bob@example.com")

	if _, err := env.messages.Append(ctx, alice, bob, text("hey")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := env.messages.Append(ctx, bob, alice, text("hi")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := env.messages.Append(ctx, alice, bob, models.MessageBody{
		Kind: models.MessageImage, ImageRef: "/files/cat.png",
	}); err != nil {
		t.Fatalf("append image: %v", err)
	}

	conv, err := env.messages.ListConversation(ctx, alice, bob)
	if err != nil {
		t.Fatalf("list conversation: %v", err)
	}
	if len(conv) != 3 {
		t.Fatalf("conversation length = %d, want 3", len(conv))
	}
	if conv[0].Body.Text != "hey" || conv[1].Body.Text != "hi" {
		t.Errorf("messages out of order: %q then %q", conv[0].Body.Text, conv[1].Body.Text)
	}
	if conv[0].Sender.Name != "alice" || conv[1].Sender.Name != "bob" {
		t.Errorf("sender projection wrong: %+v, %+v", conv[0].Sender, conv[1].Sender)
	}
	if conv[2].Body.Kind != models.MessageImage || conv[2].Body.ImageRef != "/files/cat.png" {
		t.Errorf("image message round trip failed: %+v", conv[2].Body)
	}
	if !conv[0].SentAt.Before(conv[1].SentAt) {
		t.Errorf("timestamps not ascending: %v then %v", conv[0].SentAt, conv[1].SentAt)
	}

	// The conversation is the same log regardless of direction.
	reversed, err := env.messages.ListConversation(ctx, bob, alice)
	if err != nil {
		t.Fatalf("list reversed: %v", err)
	}
	if len(reversed) != len(conv) {
		t.Fatalf("reversed length = %d, want %d", len(reversed), len(conv))
	}
	for i := range conv {
		if conv[i].ID != reversed[i].ID {
			t.Errorf("message %d differs between directions: %s vs %s", i, conv[i].ID, reversed[i].ID)
		}
	}
}

func TestListConversationIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", "alice@example.com")
	bob := env.seedUser(t, "bob", "bob@example.com")
	carol := env.seedUser(t, "carol", "carol@example.com")

	if _, err := env.messages.Append(ctx, alice, bob, text("for bob")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := env.messages.Append(ctx, alice, carol, text("for carol")); err != nil {
		t.Fatalf("append: %v", err)
	}

	conv, err := env.messages.ListConversation(ctx, alice, bob)
	if err != nil {
		t.Fatalf("list conversation: %v", err)
	}
	if len(conv) != 1 || conv[0].Body.Text != "for bob" {
		t.Errorf("conversation leaked across pairs: %+v", conv)
	}
}

func TestAppendTieBreakIsInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", "alice@example.com")
	bob := env.seedUser(t, "bob", "bob@example.com")

	// Freeze the clock so every message lands on the same timestamp.
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env.messages.now = func() time.Time { return frozen }

	for _, body := range []string{"first", "second", "third"} {
		if _, err := env.messages.Append(ctx, alice, bob, text(body)); err != nil {
			t.Fatalf("append %q: %v", body, err)
		}
	}

	conv, err := env.messages.ListConversation(ctx, alice, bob)
	if err != nil {
		t.Fatalf("list conversation: %v", err)
	}
	got := []string{}
	for _, m := range conv {
		got = append(got, m.Body.Text)
	}
	if !equalStrings(got, []string{"first", "second", "third"}) {
		t.Errorf("tie-break order = %v, want insertion order", got)
	}
}

func TestAppendRejectsMalformedPayloads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", "alice@example.com")
	bob := env.seedUser(t, "bob", "bob@example.com")

	cases := []struct {
		name string
		body models.MessageBody
	}{
		{"unknown kind", models.MessageBody{Kind: "sticker", Text: "hi"}},
		{"empty text", models.MessageBody{Kind: models.MessageText}},
		{"text with image ref", models.MessageBody{Kind: models.MessageText, Text: "hi", ImageRef: "/x.png"}},
		{"image without ref", models.MessageBody{Kind: models.MessageImage}},
		{"image with text", models.MessageBody{Kind: models.MessageImage, ImageRef: "/x.png", Text: "hi"}},
	}
	for _, tc := range cases {
		if _, err := env.messages.Append(ctx, alice, bob, tc.body); !IsInvalidOperation(err) {
			t.Errorf("%s: got %v, want InvalidOperation", tc.name, err)
		}
	}

	conv, err := env.messages.ListConversation(ctx, alice, bob)
	if err != nil {
		t.Fatalf("list conversation: %v", err)
	}
	if len(conv) != 0 {
		t.Errorf("rejected payloads were stored: %+v", conv)
	}
}

func TestDeleteMany(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", "alice@example.com")
	bob := env.seedUser(t, "bob", "bob@example.com")

	id1, err := env.messages.Append(ctx, alice, bob, text("one"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	id2, err := env.messages.Append(ctx, alice, bob, text("two"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if _, err := env.messages.DeleteMany(ctx, nil); !IsInvalidOperation(err) {
		t.Errorf("empty delete: got %v, want InvalidOperation", err)
	}
	if _, err := env.messages.DeleteMany(ctx, []string{id1, ""}); !IsInvalidOperation(err) {
		t.Errorf("blank id: got %v, want InvalidOperation", err)
	}

	deleted, err := env.messages.DeleteMany(ctx, []string{"does-not-exist"})
	if err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}

	deleted, err = env.messages.DeleteMany(ctx, []string{id1, id2, "does-not-exist"})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	conv, err := env.messages.ListConversation(ctx, alice, bob)
	if err != nil {
		t.Fatalf("list conversation: %v", err)
	}
	if len(conv) != 0 {
		t.Errorf("messages survived deletion: %+v", conv)
	}
}
