package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sergiuconi/casier-api/internal/cart"
	"github.com/sergiuconi/casier-api/internal/domain/entity"
	"github.com/sergiuconi/casier-api/internal/domain/enum"
	"github.com/sergiuconi/casier-api/pkg/pagination"
)

type fakeProducts map[string]cart.Product

func (f fakeProducts) ResolveUPC(ctx context.Context, upc string) (*cart.Product, error) {
	p, ok := f[upc]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type failingProducts struct{}

func (failingProducts) ResolveUPC(ctx context.Context, upc string) (*cart.Product, error) {
	return nil, errors.New("connection refused")
}

type fakeCustomers map[string]cart.Customer

func (f fakeCustomers) ResolveCustomer(ctx context.Context, id string) (*cart.Customer, error) {
	c, ok := f[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type memorySnapshots struct {
	blobs map[string][]byte
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{blobs: map[string][]byte{}}
}

func (m *memorySnapshots) Get(ctx context.Context, key string) ([]byte, error) {
	return m.blobs[key], nil
}

func (m *memorySnapshots) Set(ctx context.Context, key string, blob []byte) error {
	m.blobs[key] = blob
	return nil
}

type fakeReceiptLog struct {
	rows []*entity.Receipt
}

func (f *fakeReceiptLog) Create(ctx context.Context, r *entity.Receipt) error {
	f.rows = append(f.rows, r)
	return nil
}

func (f *fakeReceiptLog) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return nil, nil
}

func (f *fakeReceiptLog) List(ctx context.Context, casa int, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	return nil, 0, nil
}

type fakeSettlement struct {
	state     SettlementState
	submitErr error
	polls     int
}

func (f *fakeSettlement) Submit(ctx context.Context, intent PaymentIntent) (*cart.PendingPayment, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &cart.PendingPayment{BonNo: 42, ProcessedAt: "2026-08-30T10:00:00Z"}, nil
}

func (f *fakeSettlement) Status(ctx context.Context, bonNo int) (SettlementState, error) {
	f.polls++
	return f.state, nil
}

var waterUPC = "5941234567890"

func testStore(t *testing.T) *CartStore {
	t.Helper()
	return NewCartStore(CartStoreConfig{
		Casa: 1,
		Products: fakeProducts{
			waterUPC: {ID: "1", UPC: waterUPC, Name: "Apa plata", Price: 10},
		},
		Customers: fakeCustomers{},
	})
}

func TestAddProductByUPCMergesAndRecomputes(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	state, err := s.AddProductByUPC(ctx, waterUPC, AddItemInput{Qty: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if state.Subtotal != 20 || state.TotalDiscount != 0 {
		t.Fatalf("subtotal %v discount %v, want 20 and 0", state.Subtotal, state.TotalDiscount)
	}

	state, err = s.AddProductByUPC(ctx, waterUPC, AddItemInput{Qty: 1})
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if len(state.Items) != 1 {
		t.Fatalf("expected merged single line, got %d", len(state.Items))
	}
	if state.Items[0].Qty != 3 || state.Subtotal != 30 {
		t.Fatalf("qty %v subtotal %v, want 3 and 30", state.Items[0].Qty, state.Subtotal)
	}
	if state.SelectedItemID != state.Items[0].ID {
		t.Fatalf("selected %q, want merged line %q", state.SelectedItemID, state.Items[0].ID)
	}
}

func TestAddProductByUPCLookupMissLeavesStateUnchanged(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	before := s.State()

	if _, err := s.AddProductByUPC(ctx, "0000000000000", AddItemInput{}); err == nil {
		t.Fatal("expected lookup miss error")
	}
	after := s.State()
	if len(after.Items) != len(before.Items) || after.Subtotal != before.Subtotal {
		t.Fatalf("state changed on lookup miss: %+v", after)
	}
}

func TestAddProductByUPCNetworkFailure(t *testing.T) {
	s := NewCartStore(CartStoreConfig{Casa: 1, Products: failingProducts{}})
	if _, err := s.AddProductByUPC(context.Background(), waterUPC, AddItemInput{}); err == nil {
		t.Fatal("expected error from failing resolver")
	}
	if len(s.State().Items) != 0 {
		t.Fatal("state changed on resolver failure")
	}
}

func TestAddCustomItemNeverMerges(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	in := CustomItemInput{Product: cart.Product{ID: "m", Name: "Diverse", Price: 5}, Qty: 1}

	s.AddCustomItem(ctx, in)
	state, itemID := s.AddCustomItem(ctx, in)
	if len(state.Items) != 2 {
		t.Fatalf("manual lines merged: %d lines", len(state.Items))
	}
	if state.SelectedItemID != itemID {
		t.Fatalf("selected %q, want %q", state.SelectedItemID, itemID)
	}
}

func TestSetCashGivenComputesChange(t *testing.T) {
	s := NewCartStore(CartStoreConfig{
		Casa: 1,
		Products: fakeProducts{
			waterUPC: {ID: "1", UPC: waterUPC, Name: "Apa plata", Price: 32.5},
		},
	})
	ctx := context.Background()
	if _, err := s.AddProductByUPC(ctx, waterUPC, AddItemInput{Qty: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	state := s.SetCashGiven(ctx, 50)
	if state.Change != 17.5 {
		t.Fatalf("change = %v, want 17.50", state.Change)
	}
	state = s.SetCashGiven(ctx, 20)
	if state.Change != 0 {
		t.Fatalf("change = %v, want 0 on insufficient cash", state.Change)
	}
	state = s.SetCashGiven(ctx, -5)
	if state.CashGiven != 0 {
		t.Fatalf("cash = %v, want clamp to 0", state.CashGiven)
	}
}

func TestUpdateItemMissingID(t *testing.T) {
	s := testStore(t)
	if _, err := s.UpdateItem(context.Background(), "missing", func(it cart.Item) cart.Item {
		return it
	}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestRemoveItemReselectsLastLine(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	first, _ := s.AddCustomItem(ctx, CustomItemInput{Product: cart.Product{ID: "a", Name: "A", Price: 1}, Qty: 1})
	_, secondID := s.AddCustomItem(ctx, CustomItemInput{Product: cart.Product{ID: "b", Name: "B", Price: 1}, Qty: 1})

	state, err := s.RemoveItem(ctx, secondID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if state.SelectedItemID != first.Items[0].ID {
		t.Fatalf("selected %q after removal, want %q", state.SelectedItemID, first.Items[0].ID)
	}

	state, err = s.RemoveItem(ctx, first.Items[0].ID)
	if err != nil {
		t.Fatalf("remove last: %v", err)
	}
	if state.SelectedItemID != "" || len(state.Items) != 0 {
		t.Fatalf("expected empty selection on empty cart, got %+v", state)
	}
}

func TestToggleStornoResynthesizesDeposits(t *testing.T) {
	s := NewCartStore(CartStoreConfig{
		Casa: 1,
		Products: fakeProducts{
			waterUPC: {ID: "1", UPC: waterUPC, Name: "Apa minerala", Price: 4, SGR: enum.SGRPet},
		},
	})
	ctx := context.Background()
	state, err := s.AddProductByUPC(ctx, waterUPC, AddItemInput{Qty: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(state.Items) != 2 {
		t.Fatalf("expected merchandise + deposit line, got %d", len(state.Items))
	}

	state, err = s.ToggleStorno(ctx, state.Items[0].ID)
	if err != nil {
		t.Fatalf("storno: %v", err)
	}
	for _, it := range state.Items {
		if it.Kind == cart.KindDeposit {
			t.Fatalf("deposit line survived storno of all merchandise: %+v", it)
		}
	}
}

func TestSetCustomerFallsBackToAnonymous(t *testing.T) {
	vip := cart.Customer{ID: "77", Type: enum.CustomerIndividual, LastName: "Popescu"}
	s := NewCartStore(CartStoreConfig{
		Casa:      1,
		Products:  fakeProducts{},
		Customers: fakeCustomers{"77": vip},
	})
	ctx := context.Background()

	state, err := s.SetCustomer(ctx, "77")
	if err != nil || state.Customer.LastName != "Popescu" {
		t.Fatalf("customer = %+v, err %v", state.Customer, err)
	}

	state, err = s.SetCustomer(ctx, "no-such-customer")
	if err != nil {
		t.Fatalf("fallback should not error: %v", err)
	}
	if state.Customer.ID != cart.AnonymousCustomer().ID {
		t.Fatalf("customer = %+v, want anonymous fallback", state.Customer)
	}
}

func TestCompletePaymentEmptyCart(t *testing.T) {
	s := testStore(t)
	receipt, err := s.CompletePayment(context.Background(), enum.PaymentCash)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if receipt != nil {
		t.Fatalf("empty cart produced receipt %+v", receipt)
	}
}

func TestCompletePaymentFreezesAndResets(t *testing.T) {
	log := &fakeReceiptLog{}
	s := NewCartStore(CartStoreConfig{
		Casa: 1,
		Products: fakeProducts{
			waterUPC: {ID: "1", UPC: waterUPC, Name: "Apa plata", Price: 10},
		},
		Receipts: log,
	})
	ctx := context.Background()
	state, err := s.AddProductByUPC(ctx, waterUPC, AddItemInput{Qty: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	wantTotal := state.Total

	receipt, err := s.CompletePayment(ctx, enum.PaymentCash)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if receipt == nil || receipt.Total != wantTotal {
		t.Fatalf("receipt = %+v, want total %v", receipt, wantTotal)
	}

	after := s.State()
	if len(after.Items) != 0 || after.Total != 0 {
		t.Fatalf("cart not reset: %+v", after)
	}
	if after.Customer.ID != cart.AnonymousCustomer().ID {
		t.Fatalf("customer not reverted: %+v", after.Customer)
	}
	if len(s.Receipts()) != 1 {
		t.Fatalf("receipts log has %d entries", len(s.Receipts()))
	}
	if len(log.rows) != 1 || log.rows[0].GetTotalDecimal() != wantTotal {
		t.Fatalf("persisted receipt rows: %+v", log.rows)
	}
}

func TestCompletePaymentSettlementSuccess(t *testing.T) {
	settlement := &fakeSettlement{state: SettlementDone}
	s := NewCartStore(CartStoreConfig{
		Casa: 1,
		Products: fakeProducts{
			waterUPC: {ID: "1", UPC: waterUPC, Name: "Apa plata", Price: 10},
		},
		Settlement:   settlement,
		PollInterval: time.Millisecond,
		PollTimeout:  50 * time.Millisecond,
	})
	ctx := context.Background()
	if _, err := s.AddProductByUPC(ctx, waterUPC, AddItemInput{Qty: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	receipt, err := s.CompletePayment(ctx, enum.PaymentCard)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if receipt == nil {
		t.Fatal("expected receipt after confirmed settlement")
	}
	if settlement.polls == 0 {
		t.Fatal("settlement was never polled")
	}
	if s.State().PendingPayment != nil {
		t.Fatal("pending marker not cleared")
	}
}

func TestCompletePaymentSettlementTimeoutKeepsCart(t *testing.T) {
	settlement := &fakeSettlement{state: SettlementPending}
	s := NewCartStore(CartStoreConfig{
		Casa: 1,
		Products: fakeProducts{
			waterUPC: {ID: "1", UPC: waterUPC, Name: "Apa plata", Price: 10},
		},
		Settlement:   settlement,
		PollInterval: time.Millisecond,
		PollTimeout:  10 * time.Millisecond,
	})
	ctx := context.Background()
	if _, err := s.AddProductByUPC(ctx, waterUPC, AddItemInput{Qty: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	receipt, err := s.CompletePayment(ctx, enum.PaymentCard)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if receipt != nil {
		t.Fatalf("timeout produced receipt %+v", receipt)
	}
	state := s.State()
	if len(state.Items) != 1 {
		t.Fatal("cart was reset on ambiguous settlement timeout")
	}
	if state.PendingPayment != nil {
		t.Fatal("pending marker not cleared after timeout")
	}
}

func TestSnapshotRestoreRecomputesTotals(t *testing.T) {
	snaps := newMemorySnapshots()
	products := fakeProducts{
		waterUPC: {ID: "1", UPC: waterUPC, Name: "Apa plata", Price: 10},
	}
	s := NewCartStore(CartStoreConfig{Casa: 1, Products: products, Snapshots: snaps})
	ctx := context.Background()
	if _, err := s.AddProductByUPC(ctx, waterUPC, AddItemInput{Qty: 3}); err != nil {
		t.Fatalf("add: %v", err)
	}
	s.SetCashGiven(ctx, 50)

	restored := NewCartStore(CartStoreConfig{Casa: 1, Products: products, Snapshots: snaps})
	state := restored.State()
	if len(state.Items) != 1 || state.Items[0].Qty != 3 {
		t.Fatalf("restored items: %+v", state.Items)
	}
	if state.Subtotal != 30 || state.Change != 20 {
		t.Fatalf("restored totals not recomputed: subtotal %v change %v", state.Subtotal, state.Change)
	}
}

func TestResetCart(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.AddProductByUPC(ctx, waterUPC, AddItemInput{Qty: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	state := s.ResetCart(ctx)
	if len(state.Items) != 0 || state.Total != 0 || state.CashGiven != 0 {
		t.Fatalf("reset state: %+v", state)
	}
}
