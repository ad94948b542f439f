package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"tria-ai-be/internal/constant"
	"tria-ai-be/internal/dto"
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/repository/memory"
	"tria-ai-be/pkg/llm"
	"tria-ai-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

// fakeProvider scripts one reply or error per call, in order, and records
// every history it was asked with.
type fakeProvider struct {
	replies   []string
	errs      []error
	histories [][]llm.Message
	calls     int
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	i := f.calls
	f.calls++
	f.histories = append(f.histories, history)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", errors.New("no scripted reply")
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestChatService(provider llm.LLMProvider) *chatService {
	return &chatService{
		turnStates:  memory.NewTurnStateRepository(),
		llmProvider: provider,
		logger:      noopLogger{},
		pacingDelay: time.Millisecond,
	}
}

func TestExecuteTurnBothPersonasSucceed(t *testing.T) {
	provider := &fakeProvider{replies: []string{"Hi, I'm Ram!", "And I'm Laxman!"}}
	s := newTestChatService(provider)

	ramReply, laxmanReply, err := s.executeTurn(context.Background(), "conv-1", nil)

	assert.NoError(t, err)
	assert.Equal(t, "Hi, I'm Ram!", ramReply)
	assert.Equal(t, "And I'm Laxman!", laxmanReply)
	assert.Equal(t, 2, provider.calls)
}

func TestExecuteTurnFirstPersonaFailureSubstitutesApology(t *testing.T) {
	provider := &fakeProvider{
		replies: []string{"", "Looks like Ram is napping, I'll take this one."},
		errs:    []error{errors.New("connection refused"), nil},
	}
	s := newTestChatService(provider)

	ramReply, laxmanReply, err := s.executeTurn(context.Background(), "conv-1", nil)

	assert.NoError(t, err)
	assert.Equal(t, constant.ApologyReply, ramReply)
	assert.Equal(t, "Looks like Ram is napping, I'll take this one.", laxmanReply)
	// The second persona still speaks after the first one fails.
	assert.Equal(t, 2, provider.calls)
}

func TestExecuteTurnSecondPersonaFailureSubstitutesApology(t *testing.T) {
	provider := &fakeProvider{
		replies: []string{"All good here.", ""},
		errs:    []error{nil, errors.New("rate limited")},
	}
	s := newTestChatService(provider)

	ramReply, laxmanReply, err := s.executeTurn(context.Background(), "conv-1", nil)

	assert.NoError(t, err)
	assert.Equal(t, "All good here.", ramReply)
	assert.Equal(t, constant.ApologyReply, laxmanReply)
}

func TestExecuteTurnBothFailuresStillYieldTwoReplies(t *testing.T) {
	provider := &fakeProvider{
		errs: []error{errors.New("down"), errors.New("down")},
	}
	s := newTestChatService(provider)

	ramReply, laxmanReply, err := s.executeTurn(context.Background(), "conv-1", nil)

	assert.NoError(t, err)
	assert.Equal(t, constant.ApologyReply, ramReply)
	assert.Equal(t, constant.ApologyReply, laxmanReply)
}

func TestExecuteTurnSecondPersonaSeesFirstReply(t *testing.T) {
	provider := &fakeProvider{replies: []string{"Tacos, obviously.", "I second the tacos."}}
	s := newTestChatService(provider)

	window := []*entity.Message{
		{Sender: constant.SenderUser, Content: "What should we eat?"},
	}

	_, _, err := s.executeTurn(context.Background(), "conv-1", window)
	assert.NoError(t, err)

	if assert.Len(t, provider.histories, 2) {
		laxmanPrompt := provider.histories[1][1].Content
		assert.Contains(t, laxmanPrompt, "Ram: Tacos, obviously.")
		assert.Contains(t, laxmanPrompt, "User: What should we eat?")
	}
}

func TestExecuteTurnAdvancesPhaseBetweenPersonas(t *testing.T) {
	provider := &fakeProvider{replies: []string{"one", "two"}}
	s := newTestChatService(provider)

	assert.True(t, s.turnStates.TryAcquire("conv-1", "user-1", "hello"))

	_, _, err := s.executeTurn(context.Background(), "conv-1", nil)
	assert.NoError(t, err)

	state, found := s.turnStates.Get("conv-1")
	if assert.True(t, found) {
		assert.Equal(t, store.PhaseAwaitingPersonaB, state.Phase)
	}
}

func TestExecuteTurnCancelledContextAborts(t *testing.T) {
	provider := &fakeProvider{replies: []string{"one", "two"}}
	s := newTestChatService(provider)
	s.pacingDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, _, err := s.executeTurn(ctx, "conv-1", nil)

	assert.ErrorIs(t, err, context.Canceled)
	// Cancellation during the pacing wait means the second persona is never asked.
	assert.Equal(t, 1, provider.calls)
}

func TestBuildHistoryShape(t *testing.T) {
	ram := constant.PersonaFor(constant.PersonaRam)
	window := []*entity.Message{
		{Sender: constant.SenderUser, Content: "hello"},
		{Sender: constant.SenderRam, Content: "hi there"},
	}

	history := buildHistory(ram, window)

	if assert.Len(t, history, 2) {
		assert.Equal(t, "system", history[0].Role)
		assert.Equal(t, ram.SystemPrompt, history[0].Content)
		assert.Equal(t, "user", history[1].Role)
		assert.Contains(t, history[1].Content, "User: hello")
		assert.Contains(t, history[1].Content, "Ram: hi there")
		assert.Contains(t, history[1].Content, "Respond as Ram.")
	}
}

func TestBuildHistoryKeepsEveryEntry(t *testing.T) {
	// The window is sized by the caller; serialization must not drop the
	// second persona's extra entry.
	laxman := constant.PersonaFor(constant.PersonaLaxman)

	var window []*entity.Message
	for i := 0; i < constant.ContextWindowSize+2; i++ {
		window = append(window, &entity.Message{
			Sender:  constant.SenderUser,
			Content: fmt.Sprintf("message %d", i),
		})
	}

	history := buildHistory(laxman, window)
	prompt := history[1].Content

	assert.Equal(t, constant.ContextWindowSize+2, strings.Count(prompt, "User: message"))
	assert.Contains(t, prompt, "message 0")
}

func TestPersonaPromptsCarryFullWindow(t *testing.T) {
	provider := &fakeProvider{replies: []string{"ram says hi", "laxman says hi"}}
	s := newTestChatService(provider)

	history := make([]dto.AnonymousEntry, constant.ContextWindowSize)
	for i := range history {
		history[i] = dto.AnonymousEntry{
			Sender:  constant.SenderUser,
			Content: fmt.Sprintf("prior %d", i+1),
		}
	}

	_, err := s.SendAnonymousMessage(context.Background(), &dto.AnonymousTurnRequest{
		Content: "the new question",
		History: history,
	})
	assert.NoError(t, err)

	if assert.Len(t, provider.histories, 2) {
		ramPrompt := provider.histories[0][1].Content
		for i := 1; i <= constant.ContextWindowSize; i++ {
			assert.Contains(t, ramPrompt, fmt.Sprintf("prior %d", i), "first persona should see all prior entries")
		}
		assert.Contains(t, ramPrompt, "the new question")

		laxmanPrompt := provider.histories[1][1].Content
		for i := 1; i <= constant.ContextWindowSize; i++ {
			assert.Contains(t, laxmanPrompt, fmt.Sprintf("prior %d", i), "second persona should see all prior entries")
		}
		assert.Contains(t, laxmanPrompt, "the new question")
		assert.Contains(t, laxmanPrompt, "Ram: ram says hi")
	}
}

func TestAnonymousHistoryTruncatedToWindow(t *testing.T) {
	provider := &fakeProvider{replies: []string{"one", "two"}}
	s := newTestChatService(provider)

	history := make([]dto.AnonymousEntry, constant.ContextWindowSize+3)
	for i := range history {
		history[i] = dto.AnonymousEntry{
			Sender:  constant.SenderUser,
			Content: fmt.Sprintf("entry %d", i),
		}
	}

	_, err := s.SendAnonymousMessage(context.Background(), &dto.AnonymousTurnRequest{
		Content: "latest",
		History: history,
	})
	assert.NoError(t, err)

	ramPrompt := provider.histories[0][1].Content
	assert.NotContains(t, ramPrompt, "entry 0")
	assert.NotContains(t, ramPrompt, "entry 2")
	assert.Contains(t, ramPrompt, "entry 3")
	assert.Contains(t, ramPrompt, fmt.Sprintf("entry %d", constant.ContextWindowSize+2))
	assert.Contains(t, ramPrompt, "latest")
}

func TestAskPersonaTrimsAndSubstitutesEmptyReply(t *testing.T) {
	provider := &fakeProvider{replies: []string{"   \n\t  "}}
	s := newTestChatService(provider)

	reply := s.askPersona(context.Background(), constant.PersonaFor(constant.PersonaRam), nil)
	assert.Equal(t, constant.ApologyReply, reply)

	provider.replies = append(provider.replies, "  padded reply  ")
	reply = s.askPersona(context.Background(), constant.PersonaFor(constant.PersonaLaxman), nil)
	assert.Equal(t, "padded reply", reply)
}

func TestMultiTurnContextAccumulation(t *testing.T) {
	provider := &fakeProvider{replies: []string{
		"Kyoto in autumn, you can't go wrong.",
		"Kyoto, but pack an umbrella, Ram always forgets the rain.",
		"Five days is enough for the temples and one day trip to Nara.",
		"Six if you count the day Ram spends lost in the bamboo grove.",
	}}
	s := newTestChatService(provider)

	firstWindow := []*entity.Message{
		{Sender: constant.SenderUser, Content: "Where should I go for my first trip to Japan?"},
	}
	ramReply, laxmanReply, err := s.executeTurn(context.Background(), "conv-1", firstWindow)
	assert.NoError(t, err)

	secondWindow := append(firstWindow,
		&entity.Message{Sender: constant.SenderRam, Content: ramReply},
		&entity.Message{Sender: constant.SenderLaxman, Content: laxmanReply},
		&entity.Message{Sender: constant.SenderUser, Content: "How many days should I plan?"},
	)
	_, _, err = s.executeTurn(context.Background(), "conv-1", secondWindow)
	assert.NoError(t, err)

	if assert.Len(t, provider.histories, 4) {
		// The second turn's prompts carry both first-turn replies.
		thirdPrompt := provider.histories[2][1].Content
		assert.Contains(t, thirdPrompt, "Ram: Kyoto in autumn")
		assert.Contains(t, thirdPrompt, "Laxman: Kyoto, but pack an umbrella")
		assert.Contains(t, thirdPrompt, "User: How many days should I plan?")
	}
}

func TestSendAnonymousMessage(t *testing.T) {
	provider := &fakeProvider{replies: []string{"Nice to meet you!", "Likewise, stranger!"}}
	s := newTestChatService(provider)

	res, err := s.SendAnonymousMessage(context.Background(), &dto.AnonymousTurnRequest{
		Content: "Hi, I'm new here",
		History: []dto.AnonymousEntry{
			{Sender: constant.SenderUser, Content: "Is anyone around?"},
			{Sender: constant.SenderRam, Content: "Always!"},
		},
	})

	assert.NoError(t, err)
	if assert.Len(t, res.Replies, 2) {
		assert.Equal(t, constant.SenderRam, res.Replies[0].Sender)
		assert.Equal(t, "Nice to meet you!", res.Replies[0].Content)
		assert.Equal(t, constant.SenderLaxman, res.Replies[1].Sender)
		assert.Equal(t, "Likewise, stranger!", res.Replies[1].Content)
	}

	// The client-held transcript reaches the first persona's prompt.
	if assert.Len(t, provider.histories, 2) {
		ramPrompt := provider.histories[0][1].Content
		assert.Contains(t, ramPrompt, "User: Is anyone around?")
		assert.Contains(t, ramPrompt, "Ram: Always!")
		assert.Contains(t, ramPrompt, "User: Hi, I'm new here")
	}
}

func TestSendAnonymousMessageProviderFailure(t *testing.T) {
	provider := &fakeProvider{errs: []error{errors.New("down"), errors.New("down")}}
	s := newTestChatService(provider)

	res, err := s.SendAnonymousMessage(context.Background(), &dto.AnonymousTurnRequest{Content: "hello?"})

	assert.NoError(t, err)
	if assert.Len(t, res.Replies, 2) {
		assert.Equal(t, constant.ApologyReply, res.Replies[0].Content)
		assert.Equal(t, constant.ApologyReply, res.Replies[1].Content)
	}
}

func TestListPersonasOrderAndContent(t *testing.T) {
	s := newTestChatService(&fakeProvider{})

	personas := s.ListPersonas()

	if assert.Len(t, personas, 2) {
		assert.Equal(t, "ram", personas[0].Key)
		assert.Equal(t, "Dedicated & Fun", personas[0].Tagline)
		assert.Equal(t, "laxman", personas[1].Key)
		assert.Equal(t, "Funny & Perfect", personas[1].Tagline)
	}
}
