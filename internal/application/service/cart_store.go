package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sergiuconi/casier-api/internal/cart"
	"github.com/sergiuconi/casier-api/internal/domain/entity"
	"github.com/sergiuconi/casier-api/internal/domain/enum"
	"github.com/sergiuconi/casier-api/internal/domain/repository"
	"github.com/sergiuconi/casier-api/pkg/apperror"
	"github.com/sergiuconi/casier-api/pkg/money"
)

// ProductResolver resolves a scan code to a catalog snapshot.
// A lookup miss is (nil, nil); errors are network/storage failures.
type ProductResolver interface {
	ResolveUPC(ctx context.Context, upc string) (*cart.Product, error)
}

// CustomerResolver resolves a customer identifier. A miss is (nil, nil).
type CustomerResolver interface {
	ResolveCustomer(ctx context.Context, id string) (*cart.Customer, error)
}

// PaymentIntent is the snapshot submitted to the settlement side-channel.
type PaymentIntent struct {
	Casa      int                `json:"casa"`
	Method    enum.PaymentMethod `json:"method"`
	Total     float64            `json:"total"`
	CodFiscal string             `json:"cod_fiscal,omitempty"`
	Items     []cart.Item        `json:"items"`
}

// SettlementState is the polled terminal state of a submitted payment.
type SettlementState string

const (
	SettlementPending  SettlementState = "pending"
	SettlementDone     SettlementState = "done"
	SettlementRejected SettlementState = "rejected"
)

// SettlementClient is the payment settlement side-channel: submit an
// intent, then poll the returned handle to a terminal state.
type SettlementClient interface {
	Submit(ctx context.Context, intent PaymentIntent) (*cart.PendingPayment, error)
	Status(ctx context.Context, bonNo int) (SettlementState, error)
}

// SGRReporter receives the per-category deposit quantities whenever the
// SGR composition of the cart changes. Pushes are best-effort.
type SGRReporter interface {
	ReportSGR(ctx context.Context, quantities map[enum.SGRCategory]float64) error
}

// CartStoreConfig wires a register's collaborators. Snapshots, settlement
// and the SGR reporter are optional; a nil snapshot store disables
// persistence and nil side-channels disable their pushes.
type CartStoreConfig struct {
	Casa            int
	Products        ProductResolver
	Customers       CustomerResolver
	Snapshots       repository.SnapshotStore
	Receipts        repository.ReceiptRepository
	Settlement      SettlementClient
	SGR             SGRReporter
	DefaultCustomer *cart.Customer
	PollInterval    time.Duration
	PollTimeout     time.Duration
}

// CartStore owns the authoritative cart state of one register. All
// mutations run to completion under the store lock, so two operations on
// the same cart never interleave. Derived totals are re-computed before
// any mutation returns; partial totals are never observable.
type CartStore struct {
	mu sync.Mutex

	casa            int
	state           cart.State
	receipts        []cart.Receipt
	defaultCustomer cart.Customer

	products   ProductResolver
	customers  CustomerResolver
	snapshots  repository.SnapshotStore
	receiptLog repository.ReceiptRepository
	settlement SettlementClient
	sgr        SGRReporter

	pollInterval time.Duration
	pollTimeout  time.Duration
	now          func() time.Time
}

// snapshot is the persisted partial view of the cart state. Derived
// totals are saved for display continuity but recomputed on restore.
type snapshot struct {
	Items          []cart.Item        `json:"items"`
	CashGiven      float64            `json:"cashGiven"`
	Subtotal       float64            `json:"subtotal"`
	TotalDiscount  float64            `json:"totalDiscount"`
	Total          float64            `json:"total"`
	Change         float64            `json:"change"`
	Customer       cart.Customer      `json:"customer"`
	SelectedItemID string             `json:"selectedItemId,omitempty"`
	PaymentMethod  enum.PaymentMethod `json:"paymentMethod,omitempty"`
}

const snapshotKeyPrefix = "pos-cart-state"

// NewCartStore builds a register store and restores its persisted
// snapshot, if any. Restored totals are recomputed from the items rather
// than trusted, so a stale or hand-edited snapshot cannot surface
// inconsistent money values.
func NewCartStore(cfg CartStoreConfig) *CartStore {
	def := cart.AnonymousCustomer()
	if cfg.DefaultCustomer != nil {
		def = *cfg.DefaultCustomer
	}
	s := &CartStore{
		casa:            cfg.Casa,
		defaultCustomer: def,
		products:        cfg.Products,
		customers:       cfg.Customers,
		snapshots:       cfg.Snapshots,
		receiptLog:      cfg.Receipts,
		settlement:      cfg.Settlement,
		sgr:             cfg.SGR,
		pollInterval:    cfg.PollInterval,
		pollTimeout:     cfg.PollTimeout,
		now:             time.Now,
	}
	if s.pollInterval <= 0 {
		s.pollInterval = 2 * time.Second
	}
	if s.pollTimeout <= 0 {
		s.pollTimeout = 90 * time.Second
	}
	s.state = cart.Initial(s.defaultCustomer)
	s.restore()
	return s
}

func (s *CartStore) snapshotKey() string {
	return fmt.Sprintf("%s-%d", snapshotKeyPrefix, s.casa)
}

func (s *CartStore) restore() {
	if s.snapshots == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	blob, err := s.snapshots.Get(ctx, s.snapshotKey())
	if err != nil {
		log.Printf("cart %d: snapshot restore failed: %v", s.casa, err)
		return
	}
	if len(blob) == 0 {
		return
	}
	var snap snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		log.Printf("cart %d: snapshot decode failed: %v", s.casa, err)
		return
	}
	s.state.Items = snap.Items
	if s.state.Items == nil {
		s.state.Items = []cart.Item{}
	}
	s.state.CashGiven = snap.CashGiven
	if snap.Customer.ID != "" {
		s.state.Customer = snap.Customer
	}
	s.state.SelectedItemID = snap.SelectedItemID
	s.state.PaymentMethod = snap.PaymentMethod
	s.state = cart.Recalculate(s.state)
}

// persist writes the partial snapshot. Failure to persist is not failure
// of the mutation itself; it is logged and the mutation stands.
func (s *CartStore) persist(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	snap := snapshot{
		Items:          s.state.Items,
		CashGiven:      s.state.CashGiven,
		Subtotal:       s.state.Subtotal,
		TotalDiscount:  s.state.TotalDiscount,
		Total:          s.state.Total,
		Change:         s.state.Change,
		Customer:       s.state.Customer,
		SelectedItemID: s.state.SelectedItemID,
		PaymentMethod:  s.state.PaymentMethod,
	}
	blob, err := json.Marshal(snap)
	if err != nil {
		log.Printf("cart %d: snapshot encode failed: %v", s.casa, err)
		return
	}
	if err := s.snapshots.Set(ctx, s.snapshotKey(), blob); err != nil {
		log.Printf("cart %d: snapshot write failed: %v", s.casa, err)
	}
}

// reportSGR pushes the current deposit composition, fire-and-forget.
func (s *CartStore) reportSGR() {
	if s.sgr == nil {
		return
	}
	quantities := cart.DepositQuantities(s.state.Items)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.sgr.ReportSGR(ctx, quantities); err != nil {
			log.Printf("cart %d: SGR report failed: %v", s.casa, err)
		}
	}()
}

// State returns a copy of the current cart state.
func (s *CartStore) State() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyState()
}

func (s *CartStore) copyState() cart.State {
	st := s.state
	st.Items = make([]cart.Item, len(s.state.Items))
	copy(st.Items, s.state.Items)
	return st
}

// Receipts returns the receipts finalized by this store instance.
func (s *CartStore) Receipts() []cart.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]cart.Receipt, len(s.receipts))
	copy(out, s.receipts)
	return out
}

// AddItemInput carries the optional per-scan overrides.
type AddItemInput struct {
	Qty       float64
	UnitPrice *float64
	Discount  *cart.Discount
	Storno    bool
}

// AddProductByUPC resolves a scan code and merges the product into the
// cart. A lookup miss or network failure leaves the cart untouched.
func (s *CartStore) AddProductByUPC(ctx context.Context, upc string, in AddItemInput) (cart.State, error) {
	product, err := s.products.ResolveUPC(ctx, upc)
	if err != nil {
		return s.State(), apperror.NewAppError(http.StatusBadGateway, "Product lookup failed")
	}
	if product == nil {
		return s.State(), apperror.NewNotFoundError("Product")
	}

	qty := in.Qty
	if qty <= 0 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, itemID := cart.Merge(s.state.Items, *product, qty, cart.Overrides{
		UnitPrice: in.UnitPrice,
		Discount:  in.Discount,
		Storno:    in.Storno,
		Casa:      s.casa,
	})
	s.state.Items = cart.Synthesize(items)
	s.state.SelectedItemID = itemID
	s.state.LastAction = "Adăugat " + product.Name
	s.state = cart.Recalculate(s.state)
	s.persist(ctx)
	s.reportSGR()
	return s.copyState(), nil
}

// CustomItemInput describes a manually entered line.
type CustomItemInput struct {
	Product   cart.Product
	Qty       float64
	UnitPrice *float64
	Discount  cart.Discount
	Storno    bool
}

// AddCustomItem appends a manual line. Manual lines never merge: each
// entry stays distinct on the printed bon.
func (s *CartStore) AddCustomItem(ctx context.Context, in CustomItemInput) (cart.State, string) {
	item := cart.NewItem(cart.NewItemInput{
		Product:   in.Product,
		Qty:       in.Qty,
		UnitPrice: in.UnitPrice,
		Discount:  in.Discount,
		Storno:    in.Storno,
		Casa:      s.casa,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Items = cart.Synthesize(append(s.state.Items, item))
	s.state.SelectedItemID = item.ID
	s.state.LastAction = "Adăugat " + item.Product.Name
	s.state = cart.Recalculate(s.state)
	s.persist(ctx)
	s.reportSGR()
	return s.copyState(), item.ID
}

// SelectItem marks a line as the active one for keypad edits.
func (s *CartStore) SelectItem(ctx context.Context, id string) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedItemID = id
	if id != "" {
		s.state.LastAction = "Selectat produs"
	}
	s.persist(ctx)
	return s.copyState()
}

func (s *CartStore) findItem(id string) bool {
	for _, it := range s.state.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// UpdateItem applies a pure transform to the line matching id.
func (s *CartStore) UpdateItem(ctx context.Context, id string, fn func(cart.Item) cart.Item) (cart.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.findItem(id) {
		return s.copyState(), apperror.NewNotFoundError("Cart item")
	}
	s.state.Items = cart.Synthesize(cart.Update(s.state.Items, id, fn))
	s.state.LastAction = "Actualizat linia"
	s.state = cart.Recalculate(s.state)
	s.persist(ctx)
	s.reportSGR()
	return s.copyState(), nil
}

// RemoveItem deletes a line and reselects the last remaining one.
func (s *CartStore) RemoveItem(ctx context.Context, id string) (cart.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.findItem(id) {
		return s.copyState(), apperror.NewNotFoundError("Cart item")
	}
	s.state.Items = cart.Synthesize(cart.Remove(s.state.Items, id))
	if len(s.state.Items) > 0 {
		s.state.SelectedItemID = s.state.Items[len(s.state.Items)-1].ID
	} else {
		s.state.SelectedItemID = ""
	}
	s.state.LastAction = "Produs șters"
	s.state = cart.Recalculate(s.state)
	s.persist(ctx)
	s.reportSGR()
	return s.copyState(), nil
}

// MoveItemUp swaps the line with its predecessor.
func (s *CartStore) MoveItemUp(ctx context.Context, id string) cart.State {
	return s.move(ctx, id, cart.MoveUp)
}

// MoveItemDown swaps the line with its successor.
func (s *CartStore) MoveItemDown(ctx context.Context, id string) cart.State {
	return s.move(ctx, id, cart.MoveDown)
}

func (s *CartStore) move(ctx context.Context, id string, dir cart.Direction) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = cart.Move(s.state.Items, id, dir)
	s.state.LastAction = "Mutat produs"
	s.persist(ctx)
	return s.copyState()
}

// ToggleStorno flips the reversal flag on a line. The deposit lines are
// re-synthesized immediately so the SGR total reflects only active
// merchandise.
func (s *CartStore) ToggleStorno(ctx context.Context, id string) (cart.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.findItem(id) {
		return s.copyState(), apperror.NewNotFoundError("Cart item")
	}
	items := cart.Update(s.state.Items, id, func(it cart.Item) cart.Item {
		it.Storno = !it.Storno
		return it
	})
	s.state.Items = cart.Synthesize(items)
	s.state.LastAction = "Storno produs"
	s.state = cart.Recalculate(s.state)
	s.persist(ctx)
	s.reportSGR()
	return s.copyState(), nil
}

// SetCashGiven records the tendered cash amount, clamped to zero.
func (s *CartStore) SetCashGiven(ctx context.Context, value float64) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	cash := money.Round(value)
	if cash < 0 {
		cash = 0
	}
	s.state.CashGiven = cash
	s.state.LastAction = "Actualizat plată numerar"
	s.state = cart.Recalculate(s.state)
	s.persist(ctx)
	return s.copyState()
}

// TenderSplit carries the explicit amounts of a mixed tender.
type TenderSplit struct {
	CardAmount     float64
	NumerarAmount  float64
	BonuriValorice float64
}

// SetTenderSplit records the mixed-tender breakdown. Amounts are clamped
// to zero and rounded; the split is informational for the settlement
// intent and does not alter totals.
func (s *CartStore) SetTenderSplit(ctx context.Context, split TenderSplit) cart.State {
	clamp := func(v float64) float64 {
		v = money.Round(v)
		if v < 0 {
			return 0
		}
		return v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CardAmount = clamp(split.CardAmount)
	s.state.NumerarAmount = clamp(split.NumerarAmount)
	s.state.BonuriValorice = clamp(split.BonuriValorice)
	s.state.LastAction = "Actualizat plată mixtă"
	s.persist(ctx)
	return s.copyState()
}

// SetCodFiscal records the fiscal code to print on the bon.
func (s *CartStore) SetCodFiscal(ctx context.Context, cod string) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CodFiscal = cod
	s.persist(ctx)
	return s.copyState()
}

// SetPaymentMethod pre-selects the tender before completion.
func (s *CartStore) SetPaymentMethod(ctx context.Context, method enum.PaymentMethod) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PaymentMethod = method
	s.state.LastAction = "Metodă " + string(method)
	s.persist(ctx)
	return s.copyState()
}

// SetCustomer resolves and attaches a customer. A lookup miss falls back
// to the default anonymous customer rather than failing the sale.
func (s *CartStore) SetCustomer(ctx context.Context, id string) (cart.State, error) {
	var customer *cart.Customer
	var err error
	if s.customers != nil {
		customer, err = s.customers.ResolveCustomer(ctx, id)
		if err != nil {
			return s.State(), apperror.NewAppError(http.StatusBadGateway, "Customer lookup failed")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if customer == nil {
		s.state.Customer = s.defaultCustomer
		s.state.LastAction = "Client " + s.defaultCustomer.LastName
	} else {
		s.state.Customer = *customer
		name := customer.LastName
		if name == "" {
			name = customer.ID
		}
		s.state.LastAction = "Client " + name
	}
	s.persist(ctx)
	return s.copyState(), nil
}

// CompletePayment settles the cart. An empty cart returns no receipt and
// leaves the state unchanged. Methods that settle through the
// side-channel submit an intent and poll it to a terminal state; on
// timeout the pending marker is cleared and an error surfaced, but the
// cart is deliberately not reset — the payment may have succeeded
// server-side and the operator must resolve the ambiguity.
func (s *CartStore) CompletePayment(ctx context.Context, method enum.PaymentMethod) (*cart.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Items) == 0 {
		return nil, nil
	}

	var bonNo *int
	if method.RequiresSettlement() && s.settlement != nil {
		var err error
		if bonNo, err = s.settle(ctx, method); err != nil {
			return nil, err
		}
	}

	receipt := cart.Freeze(s.state, method, s.now())
	s.receipts = append(s.receipts, receipt)
	s.logReceipt(ctx, receipt, bonNo)

	s.state = cart.Initial(s.defaultCustomer)
	s.state.PaymentMethod = method
	s.state.LastAction = "Plată " + string(method) + " înregistrată"
	s.persist(ctx)
	s.reportSGR()
	return &receipt, nil
}

// settle submits the payment intent and polls it to a terminal state.
// Caller holds the store lock: settlement confirmation is part of the
// mutation and no other operation may interleave with it.
func (s *CartStore) settle(ctx context.Context, method enum.PaymentMethod) (*int, error) {
	intent := PaymentIntent{
		Casa:      s.casa,
		Method:    method,
		Total:     s.state.Total,
		CodFiscal: s.state.CodFiscal,
		Items:     s.state.Items,
	}
	pending, err := s.settlement.Submit(ctx, intent)
	if err != nil {
		return nil, apperror.NewAppError(http.StatusBadGateway, "Payment submission failed")
	}
	if pending == nil {
		return nil, nil
	}
	p := *pending
	p.Type = method
	s.state.PendingPayment = &p
	s.persist(ctx)

	err = s.awaitSettlement(ctx, p.BonNo)
	s.state.PendingPayment = nil
	if err != nil {
		s.persist(ctx)
		return nil, err
	}
	return &p.BonNo, nil
}

func (s *CartStore) awaitSettlement(ctx context.Context, bonNo int) error {
	deadline := time.NewTimer(s.pollTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		state, err := s.settlement.Status(ctx, bonNo)
		if err != nil {
			log.Printf("cart %d: settlement poll failed: %v", s.casa, err)
		} else {
			switch state {
			case SettlementDone:
				return nil
			case SettlementRejected:
				return apperror.NewAppError(http.StatusPaymentRequired, "Payment rejected")
			}
		}

		select {
		case <-ctx.Done():
			return apperror.NewAppError(http.StatusGatewayTimeout, "Payment confirmation cancelled")
		case <-deadline.C:
			return apperror.NewAppError(http.StatusGatewayTimeout, "Payment confirmation timed out")
		case <-ticker.C:
		}
	}
}

func (s *CartStore) logReceipt(ctx context.Context, receipt cart.Receipt, bonNo *int) {
	if s.receiptLog == nil {
		return
	}
	lines, err := json.Marshal(receipt.Items)
	if err != nil {
		log.Printf("cart %d: receipt encode failed: %v", s.casa, err)
		return
	}
	row := &entity.Receipt{
		ID:            receiptRowID(receipt.ID),
		Casa:          s.casa,
		BonNo:         bonNo,
		Total:         int64(math.Round(receipt.Total * 100)),
		PaymentMethod: receipt.PaymentMethod,
		Lines:         lines,
		IssuedAt:      receipt.Timestamp,
	}
	if err := s.receiptLog.Create(ctx, row); err != nil {
		log.Printf("cart %d: receipt log write failed: %v", s.casa, err)
	}
}

// receiptRowID reuses the frozen receipt id for the persisted row so the
// in-memory log and the database agree on identity.
func receiptRowID(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

// ResetCart discards the cart and returns to the initial state.
func (s *CartStore) ResetCart(ctx context.Context) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = cart.Initial(s.defaultCustomer)
	s.persist(ctx)
	s.reportSGR()
	return s.copyState()
}
