package service

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode"

	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/pkg/mailer"
	"incorporate-run-be/internal/repository/memory"
	"incorporate-run-be/pkg/embedding"
	"incorporate-run-be/pkg/events"
	"incorporate-run-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	mu       sync.Mutex
	generate func(prompt string, opts *llm.Options) (string, error)
	chat     func(history []llm.Message) (string, error)
	prompts  []string
	chats    [][]llm.Message
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	gen := f.generate
	f.mu.Unlock()
	if gen == nil {
		return "# Draft\n\nGenerated body.", nil
	}
	return gen(prompt, llm.ApplyOptions(options...))
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.mu.Lock()
	f.chats = append(f.chats, append([]llm.Message(nil), history...))
	chat := f.chat
	f.mu.Unlock()
	if chat == nil {
		return "Here is what I found.", nil
	}
	return chat(history)
}

func (f *fakeLLM) lastChat() []llm.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.chats) == 0 {
		return nil
	}
	return f.chats[len(f.chats)-1]
}

// wordEmbedder hashes words into a fixed number of buckets, so texts that
// share vocabulary land close together.
type wordEmbedder struct{}

const embedDims = 64

func (wordEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	values := make([]float32, embedDims)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		values[h.Sum32()%embedDims]++
	}
	res := &embedding.EmbeddingResponse{}
	res.Embedding.Values = values
	return res, nil
}

type sentMail struct {
	To   string
	Kind string
	URL  string
}

type fakeMailer struct {
	mu   sync.Mutex
	fail error
	sent []sentMail
}

func (m *fakeMailer) SendFounderInvitation(to string, data mailer.FounderInvitation) error {
	return m.record(to, "invitation", data.InviteURL)
}

func (m *fakeMailer) SendSignatureRequest(to string, data mailer.SignatureRequest) error {
	return m.record(to, "signature", data.SignURL)
}

func (m *fakeMailer) record(to, kind, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{To: to, Kind: kind, URL: url})
	return nil
}

func (m *fakeMailer) setFail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

func (m *fakeMailer) count(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sent {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

type eventRecorder struct {
	mu    sync.Mutex
	types []string
}

func (r *eventRecorder) handle(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, event.EventType())
	return nil
}

func (r *eventRecorder) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.types {
		if t == eventType {
			n++
		}
	}
	return n
}

type recordingDelivery struct {
	mu   sync.Mutex
	sent map[uuid.UUID][]*entity.Notification
}

func (d *recordingDelivery) Send(userID uuid.UUID, n *entity.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sent == nil {
		d.sent = make(map[uuid.UUID][]*entity.Notification)
	}
	d.sent[userID] = append(d.sent[userID], n)
}

func (d *recordingDelivery) forUser(userID uuid.UUID) []*entity.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*entity.Notification(nil), d.sent[userID]...)
}

type testEnv struct {
	factory *memory.RepositoryFactory
	llm     *fakeLLM
	mailer  *fakeMailer
	bus     *events.ChannelBus
	events  *eventRecorder
	pubSub  *gochannel.GoChannel

	auth       IAuthService
	company    ICompanyService
	founder    IFounderService
	investor   IInvestorService
	document   IDocumentService
	signature  ISignatureService
	task       ITaskService
	capTable   ICapTableService
	chat       IChatService
	generation IGenerationService
	retrieval  IRetrievalService
	outbox     IOutboxService
	consumer   IConsumerService
}

const testTopic = "index-documents"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logger.NewNop()
	env := &testEnv{
		factory: memory.NewRepositoryFactory(memory.NewStore()),
		llm:     &fakeLLM{},
		mailer:  &fakeMailer{},
		bus:     events.NewChannelBus(nil),
		events:  &eventRecorder{},
		pubSub:  gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
	}
	t.Cleanup(func() { _ = env.pubSub.Close() })
	require.NoError(t, env.bus.Subscribe(context.Background(), "events.>", "recorder", env.events.handle))

	env.generation = NewGenerationService(env.llm, log)
	env.retrieval = NewRetrievalService(env.factory, wordEmbedder{}, log)
	publisher := NewPublisherService(env.pubSub, testTopic)
	env.consumer = NewConsumerService(env.pubSub, testTopic, env.factory, env.retrieval, log)
	env.outbox = NewOutboxService(env.factory, env.mailer, 3, log)

	env.auth = NewAuthService(env.factory, "test-secret")
	env.founder = NewFounderService(env.factory, env.outbox, env.bus, "https://app.test/", log)
	env.investor = NewInvestorService(env.factory, env.generation, publisher, env.bus, log)
	env.company = NewCompanyService(env.factory, memory.NewCompanyCache(time.Minute), env.founder, env.investor, log)
	env.document = NewDocumentService(env.factory, env.generation, env.retrieval, publisher, log)
	env.signature = NewSignatureService(env.factory, env.outbox, env.bus, "https://app.test", log)
	env.task = NewTaskService(env.factory)
	env.capTable = NewCapTableService(env.factory)
	env.chat = NewChatService(env.factory, env.generation, env.retrieval, log)
	return env
}

func (e *testEnv) createCompany(t *testing.T, name string) (userId, companyId uuid.UUID) {
	t.Helper()
	userId = uuid.New()
	res, err := e.company.Create(context.Background(), userId, &dto.CreateCompanyRequest{
		Name:         name,
		Jurisdiction: "delaware",
	})
	require.NoError(t, err)
	return userId, res.Id
}

func (e *testEnv) inviteFounder(t *testing.T, companyId uuid.UUID, email, firstName string) *dto.FounderResponse {
	t.Helper()
	res, err := e.founder.Invite(context.Background(), companyId, &dto.InviteFounderRequest{
		Email:            email,
		FirstName:        firstName,
		Role:             "CEO",
		EquityPercentage: 50,
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) createDocument(t *testing.T, companyId uuid.UUID, title, content string) *dto.DocumentResponse {
	t.Helper()
	res, err := e.document.Create(context.Background(), companyId, &dto.CreateDocumentRequest{
		Type:    "founders_agreement",
		Title:   title,
		Content: content,
	})
	require.NoError(t, err)
	return res
}

// tokens maps signer email to magic token for one document.
func (e *testEnv) tokens(documentId uuid.UUID) map[string]string {
	out := make(map[string]string)
	for _, sig := range e.factory.Store().Signatures() {
		if sig.DocumentId == documentId {
			out[sig.SignerEmail] = sig.MagicToken
		}
	}
	return out
}

func (e *testEnv) intentsFor(recipient string) []entity.NotificationIntent {
	var out []entity.NotificationIntent
	for _, in := range e.factory.Store().Intents() {
		if in.Recipient == recipient {
			out = append(out, in)
		}
	}
	return out
}
