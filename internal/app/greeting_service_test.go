package app

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"birthday_bot/internal/domain/birthday"
	"birthday_bot/internal/domain/destination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

type fakeRegistry struct {
	chatID int64
	err    error
}

func (f *fakeRegistry) Register(_ context.Context, chatID int64) error {
	f.chatID = chatID
	return nil
}

func (f *fakeRegistry) Current(_ context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.chatID, nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeClient struct {
	messages    []sentMessage
	photos      []int64
	failOnSends map[int]error // by zero-based SendMessage call index
}

func (f *fakeClient) SendMessage(chatID int64, text string, _ *telebot.SendOptions) error {
	idx := len(f.messages)
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text})
	if err, ok := f.failOnSends[idx]; ok {
		return err
	}
	return nil
}

func (f *fakeClient) SendPhoto(chatID int64, _ io.Reader) error {
	f.photos = append(f.photos, chatID)
	return nil
}

type fakePool struct {
	image []byte
}

func (f *fakePool) PickRandom(_ *rand.Rand) ([]byte, bool) {
	if f.image == nil {
		return nil, false
	}
	return f.image, true
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func augustFirst() time.Time {
	return time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)
}

func record(memberID int64, fullName string, date birthday.MonthDay) *birthday.Record {
	return &birthday.Record{
		MemberID: memberID,
		FullName: sql.NullString{String: fullName, Valid: fullName != ""},
		Birthday: date,
	}
}

func TestDailyGreetingsNoMatchesMakesNoGatewayCalls(t *testing.T) {
	repo := newFakeBirthdayRepo()
	client := &fakeClient{}
	svc := NewGreetingService(repo, &fakeRegistry{chatID: 100}, client, &fakePool{}, testRand(), testLogger())

	require.NoError(t, svc.SendDailyGreetings(context.Background(), augustFirst()))
	assert.Empty(t, client.messages)
	assert.Empty(t, client.photos)
}

func TestDailyGreetingsNoDestinationIsSilentNoop(t *testing.T) {
	repo := newFakeBirthdayRepo()
	repo.records[7] = record(7, "Olen", birthday.MonthDay{Month: 8, Day: 1})
	client := &fakeClient{}
	svc := NewGreetingService(repo, &fakeRegistry{err: destination.ErrNoDestination}, client, &fakePool{}, testRand(), testLogger())

	require.NoError(t, svc.SendDailyGreetings(context.Background(), augustFirst()))
	assert.Empty(t, client.messages)
}

func TestDailyGreetingsOneMessagePerMatchingRecord(t *testing.T) {
	repo := newFakeBirthdayRepo()
	today := birthday.MonthDay{Month: 8, Day: 1}
	repo.records[7] = record(7, "Olen", today)
	repo.records[8] = record(8, "Nina", today)
	repo.records[9] = record(9, "Taras", birthday.MonthDay{Month: 12, Day: 1})

	client := &fakeClient{}
	svc := NewGreetingService(repo, &fakeRegistry{chatID: 100}, client, &fakePool{}, testRand(), testLogger())

	require.NoError(t, svc.SendDailyGreetings(context.Background(), augustFirst()))
	require.Len(t, client.messages, 2)
	for _, msg := range client.messages {
		assert.Equal(t, int64(100), msg.chatID)
	}
}

func TestDailyGreetingsSendFailureDoesNotStopOthers(t *testing.T) {
	repo := newFakeBirthdayRepo()
	today := birthday.MonthDay{Month: 8, Day: 1}
	repo.records[7] = record(7, "Olen", today)
	repo.records[8] = record(8, "Nina", today)

	client := &fakeClient{failOnSends: map[int]error{0: errors.New("telegram unavailable")}}
	svc := NewGreetingService(repo, &fakeRegistry{chatID: 100}, client, &fakePool{}, testRand(), testLogger())

	require.NoError(t, svc.SendDailyGreetings(context.Background(), augustFirst()))
	assert.Len(t, client.messages, 2, "the second greeting must still be attempted")
}

func TestDailyGreetingsTargetsRegisteredChatWithImage(t *testing.T) {
	repo := newFakeBirthdayRepo()
	repo.records[7] = record(7, "Olen", birthday.MonthDay{Month: 8, Day: 1})

	client := &fakeClient{}
	pool := &fakePool{image: []byte("png-bytes")}
	svc := NewGreetingService(repo, &fakeRegistry{chatID: 555}, client, pool, testRand(), testLogger())

	require.NoError(t, svc.SendDailyGreetings(context.Background(), augustFirst()))
	require.Len(t, client.messages, 1)
	assert.Equal(t, int64(555), client.messages[0].chatID)
	assert.Contains(t, client.messages[0].text, "Olen")
	assert.Equal(t, []int64{555}, client.photos)
}

func TestDailyGreetingsMentionFallbacks(t *testing.T) {
	repo := newFakeBirthdayRepo()
	anon := record(7, "", birthday.MonthDay{Month: 8, Day: 1})
	repo.records[7] = anon

	client := &fakeClient{}
	svc := NewGreetingService(repo, &fakeRegistry{chatID: 100}, client, &fakePool{}, testRand(), testLogger())

	require.NoError(t, svc.SendDailyGreetings(context.Background(), augustFirst()))
	require.Len(t, client.messages, 1)
	// Neither name nor username known: a readable placeholder, not a bare "@".
	assert.NotContains(t, client.messages[0].text, "@")
	assert.Contains(t, client.messages[0].text, "одного з учасників")
}

func TestRecordMention(t *testing.T) {
	named := record(1, "Olen", birthday.MonthDay{Month: 1, Day: 1})
	assert.Equal(t, "Olen", named.Mention())

	withHandle := record(2, "", birthday.MonthDay{Month: 1, Day: 1})
	withHandle.Username = sql.NullString{String: "nina", Valid: true}
	assert.Equal(t, "@nina", withHandle.Mention())
}
