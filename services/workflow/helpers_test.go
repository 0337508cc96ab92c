package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	blockedRepo "vowflow/database/repository/blocked"
	bookingRepo "vowflow/database/repository/booking"
	contractRepo "vowflow/database/repository/contract"
	paymentRepo "vowflow/database/repository/payment"
	quoteRepo "vowflow/database/repository/quote"
	taskRepo "vowflow/database/repository/task"
	workflowRepo "vowflow/database/repository/workflow"
	"vowflow/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// --- in-memory stores ---

type fakeWorkflowStore struct {
	mu        sync.Mutex
	workflows map[string]*models.Workflow
	logs      []models.WorkflowStateLog

	// updateScheduleErr, when set, fails UpdateSchedule before any write.
	updateScheduleErr error
}

func newFakeWorkflowStore() *fakeWorkflowStore {
	return &fakeWorkflowStore{workflows: make(map[string]*models.Workflow)}
}

func (s *fakeWorkflowStore) Create(ctx context.Context, wf models.Workflow) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf.CreatedAt = time.Now()
	wf.UpdatedAt = wf.CreatedAt
	cp := wf
	s.workflows[wf.ID] = &cp
	s.logs = append(s.logs, models.WorkflowStateLog{
		ID:             uuid.New().String(),
		WorkflowID:     wf.ID,
		FromState:      "",
		ToState:        wf.State,
		TransitionedAt: time.Now(),
	})
	return wf.ID, nil
}

func (s *fakeWorkflowStore) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, ok := s.workflows[id]
	if !ok {
		return nil, workflowRepo.ErrNotFound
	}
	cp := *wf
	return &cp, nil
}

func (s *fakeWorkflowStore) ListByCustomer(ctx context.Context, customerID string) ([]models.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Workflow
	for _, wf := range s.workflows {
		if wf.CustomerID == customerID {
			out = append(out, *wf)
		}
	}
	return out, nil
}

func (s *fakeWorkflowStore) ListByVendor(ctx context.Context, vendorID string) ([]models.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Workflow
	for _, wf := range s.workflows {
		if wf.VendorID == vendorID {
			out = append(out, *wf)
		}
	}
	return out, nil
}

func (s *fakeWorkflowStore) Transition(ctx context.Context, workflowID string, hops []models.StateHop, within func(ctx context.Context) error) (*models.Workflow, error) {
	s.mu.Lock()
	wf, ok := s.workflows[workflowID]
	if !ok {
		s.mu.Unlock()
		return nil, workflowRepo.ErrNotFound
	}
	if wf.State != hops[0].From {
		s.mu.Unlock()
		return nil, workflowRepo.ErrStateMismatch
	}
	s.mu.Unlock()

	if within != nil {
		if err := within(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, hop := range hops {
		wf.State = hop.To
		wf.UpdatedAt = time.Now()
		s.logs = append(s.logs, models.WorkflowStateLog{
			ID:             uuid.New().String(),
			WorkflowID:     workflowID,
			FromState:      hop.From,
			ToState:        hop.To,
			TransitionedAt: time.Now(),
		})
	}
	cp := *wf
	return &cp, nil
}

func (s *fakeWorkflowStore) SetRefs(ctx context.Context, workflowID string, refs models.WorkflowRefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, ok := s.workflows[workflowID]
	if !ok {
		return workflowRepo.ErrNotFound
	}
	if refs.QuoteID != "" {
		wf.QuoteID = refs.QuoteID
	}
	if refs.ContractID != "" {
		wf.ContractID = refs.ContractID
	}
	if refs.BookingID != "" {
		wf.BookingID = refs.BookingID
	}
	return nil
}

func (s *fakeWorkflowStore) SetCancelReason(ctx context.Context, workflowID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, ok := s.workflows[workflowID]
	if !ok {
		return workflowRepo.ErrNotFound
	}
	wf.CancelReason = reason
	return nil
}

// UpdateSchedule mirrors the transactional store: the workflow fields only
// change once within has succeeded, and an injected failure aborts before
// within runs.
func (s *fakeWorkflowStore) UpdateSchedule(ctx context.Context, workflowID, date string, start, end int, within func(ctx context.Context) error) error {
	s.mu.Lock()
	wf, ok := s.workflows[workflowID]
	if !ok {
		s.mu.Unlock()
		return workflowRepo.ErrNotFound
	}
	if err := s.updateScheduleErr; err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	if within != nil {
		if err := within(ctx); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	wf.ServiceDate = date
	wf.Start = start
	wf.End = end
	return nil
}

func (s *fakeWorkflowStore) EnsureIndexes() error { return nil }

func (s *fakeWorkflowStore) logsFor(workflowID string) []models.WorkflowStateLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WorkflowStateLog
	for _, l := range s.logs {
		if l.WorkflowID == workflowID {
			out = append(out, l)
		}
	}
	return out
}

// fakeStateLogStore reads the audit rows appended by fakeWorkflowStore.
type fakeStateLogStore struct {
	store *fakeWorkflowStore
}

func (s *fakeStateLogStore) ListByWorkflow(ctx context.Context, workflowID string) ([]models.WorkflowStateLog, error) {
	return s.store.logsFor(workflowID), nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[string]*models.Booking)}
}

func (s *fakeBookingStore) slotTaken(vendorID, date string, start, end int, excludeID string) bool {
	for _, b := range s.bookings {
		if b.ID == excludeID {
			continue
		}
		if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
			continue
		}
		if b.VendorID == vendorID && b.ServiceDate == date && b.Start == start && b.End == end {
			return true
		}
	}
	return false
}

func (s *fakeBookingStore) Create(ctx context.Context, b models.Booking) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slotTaken(b.VendorID, b.ServiceDate, b.Start, b.End, "") {
		return "", bookingRepo.ErrSlotTaken
	}
	cp := b
	s.bookings[b.ID] = &cp
	return b.ID, nil
}

func (s *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) GetByWorkflowID(ctx context.Context, workflowID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.WorkflowID == workflowID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (s *fakeBookingStore) FindActive(ctx context.Context, vendorID, date, excludeID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.ID == excludeID {
			continue
		}
		if b.VendorID != vendorID || b.ServiceDate != date {
			continue
		}
		if b.Status == models.BookingPending || b.Status == models.BookingConfirmed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Status = status
	return nil
}

func (s *fakeBookingStore) UpdateSchedule(ctx context.Context, id, date string, start, end int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if s.slotTaken(b.VendorID, date, start, end, id) {
		return bookingRepo.ErrSlotTaken
	}
	b.ServiceDate = date
	b.Start = start
	b.End = end
	return nil
}

func (s *fakeBookingStore) ListByVendor(ctx context.Context, vendorID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.VendorID == vendorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) EnsureIndexes() error { return nil }

type fakeQuoteStore struct {
	mu     sync.Mutex
	quotes map[string]*models.Quote
}

func newFakeQuoteStore() *fakeQuoteStore {
	return &fakeQuoteStore{quotes: make(map[string]*models.Quote)}
}

func (s *fakeQuoteStore) Create(ctx context.Context, q models.Quote) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := q
	s.quotes[q.ID] = &cp
	return q.ID, nil
}

func (s *fakeQuoteStore) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[id]
	if !ok {
		return nil, quoteRepo.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (s *fakeQuoteStore) GetByWorkflowID(ctx context.Context, workflowID string) (*models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.quotes {
		if q.WorkflowID == workflowID {
			cp := *q
			return &cp, nil
		}
	}
	return nil, quoteRepo.ErrNotFound
}

func (s *fakeQuoteStore) UpdateStatus(ctx context.Context, id string, status models.QuoteStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[id]
	if !ok {
		return quoteRepo.ErrNotFound
	}
	q.Status = status
	return nil
}

type fakeContractStore struct {
	mu        sync.Mutex
	contracts map[string]*models.Contract
}

func newFakeContractStore() *fakeContractStore {
	return &fakeContractStore{contracts: make(map[string]*models.Contract)}
}

func (s *fakeContractStore) Create(ctx context.Context, c models.Contract) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := c
	s.contracts[c.ID] = &cp
	return c.ID, nil
}

func (s *fakeContractStore) GetByID(ctx context.Context, id string) (*models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contracts[id]
	if !ok {
		return nil, contractRepo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeContractStore) GetByWorkflowID(ctx context.Context, workflowID string) (*models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contracts {
		if c.WorkflowID == workflowID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, contractRepo.ErrNotFound
}

func (s *fakeContractStore) MarkSigned(ctx context.Context, id string, signedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contracts[id]
	if !ok {
		return contractRepo.ErrNotFound
	}
	c.Status = models.ContractSigned
	c.SignedAt = &signedAt
	return nil
}

type fakeTaskStore struct {
	mu    sync.Mutex
	tasks []models.Task
}

func (s *fakeTaskStore) Create(ctx context.Context, t models.Task) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	s.tasks = append(s.tasks, t)
	return t.ID, nil
}

func (s *fakeTaskStore) ListByWorkflow(ctx context.Context, workflowID string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.WorkflowID == workflowID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTaskStore) ListOpenByAssignee(ctx context.Context, assignedTo string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.AssignedTo == assignedTo && t.Status == models.TaskOpen {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTaskStore) UpdateStatus(ctx context.Context, id string, status models.TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = status
			return nil
		}
	}
	return taskRepo.ErrNotFound
}

func (s *fakeTaskStore) titled(title string) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.Title == title {
			out = append(out, t)
		}
	}
	return out
}

type fakePaymentStore struct {
	mu       sync.Mutex
	payments []*models.Payment
}

func (s *fakePaymentStore) Create(ctx context.Context, p models.Payment) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.payments = append(s.payments, &cp)
	return p.ID, nil
}

func (s *fakePaymentStore) GetByIntentID(ctx context.Context, intentID string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.IntentID == intentID && (p.Type == models.PaymentDeposit || p.Type == models.PaymentBalance) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, paymentRepo.ErrNotFound
}

func (s *fakePaymentStore) ListCaptured(ctx context.Context, bookingID string) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Payment
	for _, p := range s.payments {
		if p.BookingID == bookingID && p.Status == models.PaymentSucceeded &&
			(p.Type == models.PaymentDeposit || p.Type == models.PaymentBalance) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakePaymentStore) ListByWorkflow(ctx context.Context, workflowID string) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Payment
	for _, p := range s.payments {
		if p.WorkflowID == workflowID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakePaymentStore) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus, failureReason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ID == id {
			p.Status = status
			p.FailureReason = failureReason
			return nil
		}
	}
	return paymentRepo.ErrNotFound
}

func (s *fakePaymentStore) SupersedePending(ctx context.Context, bookingID string, ptype models.PaymentType, exceptID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.BookingID == bookingID && p.Type == ptype && p.Status == models.PaymentPending && p.ID != exceptID {
			p.Status = models.PaymentSuperseded
		}
	}
	return nil
}

func (s *fakePaymentStore) EnsureIndexes() error { return nil }

func (s *fakePaymentStore) ofType(workflowID string, ptype models.PaymentType) []models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Payment
	for _, p := range s.payments {
		if p.WorkflowID == workflowID && p.Type == ptype {
			out = append(out, *p)
		}
	}
	return out
}

type fakeBlockedStore struct {
	mu     sync.Mutex
	blocks map[string]*models.BlockedDate
}

func newFakeBlockedStore() *fakeBlockedStore {
	return &fakeBlockedStore{blocks: make(map[string]*models.BlockedDate)}
}

func (s *fakeBlockedStore) Create(ctx context.Context, b models.BlockedDate) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.BlockID == "" {
		b.BlockID = uuid.New().String()
	}
	cp := b
	s.blocks[b.BlockID] = &cp
	return b.BlockID, nil
}

func (s *fakeBlockedStore) Delete(ctx context.Context, vendorID, blockID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blocks[blockID]
	if !ok || b.VendorID != vendorID {
		return blockedRepo.ErrNotFound
	}
	delete(s.blocks, blockID)
	return nil
}

func (s *fakeBlockedStore) ListByVendorDate(ctx context.Context, vendorID, date string) ([]models.BlockedDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BlockedDate
	for _, b := range s.blocks {
		if b.VendorID == vendorID && b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBlockedStore) ListByVendor(ctx context.Context, vendorID string) ([]models.BlockedDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BlockedDate
	for _, b := range s.blocks {
		if b.VendorID == vendorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

// --- gateway, notifier, scheduler fakes ---

type intentCall struct {
	id       string
	amount   float64
	currency string
	metadata map[string]string
}

type refundCall struct {
	intentID string
	amount   float64
}

type fakeGateway struct {
	mu        sync.Mutex
	seq       int
	intentErr error
	refundErr error
	intents   []intentCall
	refunds   []refundCall
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.intentErr != nil {
		return "", g.intentErr
	}
	g.seq++
	id := "pi_" + uuid.New().String()[:8]
	g.intents = append(g.intents, intentCall{id: id, amount: amount, currency: currency, metadata: metadata})
	return id, nil
}

func (g *fakeGateway) CreateRefund(ctx context.Context, intentID string, amount float64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.refundErr != nil {
		return "", g.refundErr
	}
	g.refunds = append(g.refunds, refundCall{intentID: intentID, amount: amount})
	return "re_" + uuid.New().String()[:8], nil
}

func (g *fakeGateway) lastIntent() intentCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.intents[len(g.intents)-1]
}

type sendCall struct {
	channel   string
	recipient string
	template  string
	data      map[string]string
}

type fakeNotifier struct {
	mu    sync.Mutex
	sends []sendCall
}

func (n *fakeNotifier) Send(ctx context.Context, channel, recipientID, template string, data map[string]string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sends = append(n.sends, sendCall{channel: channel, recipient: recipientID, template: template, data: data})
	return uuid.New().String(), nil
}

func (n *fakeNotifier) templated(template string) []sendCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sendCall
	for _, s := range n.sends {
		if s.template == template {
			out = append(out, s)
		}
	}
	return out
}

type fakeScheduler struct {
	mu       sync.Mutex
	payloads []models.ReminderPayload
}

func (s *fakeScheduler) Schedule(ctx context.Context, payload models.ReminderPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
	return nil
}

// --- fixture ---

type fixture struct {
	svc       *DefaultWorkflowService
	workflows *fakeWorkflowStore
	bookings  *fakeBookingStore
	quotes    *fakeQuoteStore
	contracts *fakeContractStore
	tasks     *fakeTaskStore
	payments  *fakePaymentStore
	blocked   *fakeBlockedStore
	gateway   *fakeGateway
	notifier  *fakeNotifier
	reminders *fakeScheduler
}

func newFixture() *fixture {
	f := &fixture{
		workflows: newFakeWorkflowStore(),
		bookings:  newFakeBookingStore(),
		quotes:    newFakeQuoteStore(),
		contracts: newFakeContractStore(),
		tasks:     &fakeTaskStore{},
		payments:  &fakePaymentStore{},
		blocked:   newFakeBlockedStore(),
		gateway:   &fakeGateway{},
		notifier:  &fakeNotifier{},
		reminders: &fakeScheduler{},
	}
	f.svc = &DefaultWorkflowService{
		Workflows: f.workflows,
		StateLogs: &fakeStateLogStore{store: f.workflows},
		Bookings:  f.bookings,
		Quotes:    f.quotes,
		Contracts: f.contracts,
		Tasks:     f.tasks,
		Payments:  f.payments,
		Blocked:   f.blocked,
		Gateway:   f.gateway,
		Notifier:  f.notifier,
		Reminders: f.reminders,
		Currency:  "usd",
	}
	return f
}

const (
	testCustomer = "cust-1"
	testVendor   = "vend-1"
	testWedding  = "wed-1"
	testDate     = "2026-09-12"
)

func defaultInitiateRequest() models.InitiateWorkflowRequest {
	return models.InitiateWorkflowRequest{
		CustomerID:  testCustomer,
		WeddingID:   testWedding,
		VendorID:    testVendor,
		ServiceDate: testDate,
		Start:       10 * 60,
		End:         18 * 60,
	}
}

func (f *fixture) initiate(t *testing.T) *models.Workflow {
	t.Helper()
	wf, err := f.svc.Initiate(context.Background(), defaultInitiateRequest())
	require.NoError(t, err)
	return wf
}

func (f *fixture) submitQuote(t *testing.T, wf *models.Workflow, amount, depositPct float64) *models.Workflow {
	t.Helper()
	updated, err := f.svc.SubmitQuote(context.Background(), models.SubmitQuoteRequest{
		WorkflowID:        wf.ID,
		VendorID:          wf.VendorID,
		QuoteAmount:       amount,
		DepositPercentage: depositPct,
		ValidUntil:        time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	return updated
}

func (f *fixture) acceptQuote(t *testing.T, wf *models.Workflow) *models.Workflow {
	t.Helper()
	updated, err := f.svc.AcceptQuote(context.Background(), wf.ID, wf.QuoteID, wf.CustomerID, true)
	require.NoError(t, err)
	return updated
}

// toContractGenerated drives a fresh workflow through quote submission and
// acceptance with a 2000 total and 30 percent deposit.
func (f *fixture) toContractGenerated(t *testing.T) *models.Workflow {
	t.Helper()
	wf := f.initiate(t)
	wf = f.submitQuote(t, wf, 2000, 30)
	return f.acceptQuote(t, wf)
}

func (f *fixture) toDepositPending(t *testing.T) *models.Workflow {
	t.Helper()
	wf := f.toContractGenerated(t)
	updated, err := f.svc.SignContract(context.Background(), wf.ID, wf.CustomerID)
	require.NoError(t, err)
	return updated
}

func (f *fixture) toBookingConfirmed(t *testing.T) *models.Workflow {
	t.Helper()
	wf := f.toDepositPending(t)
	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), f.gateway.lastIntent().id))
	got, err := f.svc.Get(context.Background(), wf.ID)
	require.NoError(t, err)
	return got
}

func (f *fixture) toBalancePending(t *testing.T) *models.Workflow {
	t.Helper()
	wf := f.toBookingConfirmed(t)
	updated, err := f.svc.MarkDelivered(context.Background(), wf.ID, wf.VendorID)
	require.NoError(t, err)
	return updated
}

func (f *fixture) toCompleted(t *testing.T) *models.Workflow {
	t.Helper()
	wf := f.toBalancePending(t)
	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), f.gateway.lastIntent().id))
	got, err := f.svc.Get(context.Background(), wf.ID)
	require.NoError(t, err)
	return got
}

var errGatewayDown = errors.New("gateway unreachable")
