package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartService = (*CartService)(nil)

// A CartSubscriber is notified with a snapshot of the line list after
// every mutation.
type CartSubscriber func([]domain.CartLine)

// CartService owns the cart line list, insertion order preserved.
// All mutations are total: negative quantities normalize to removal,
// unknown line ids are no-ops. Every mutation synchronously persists
// the full line list through the repository.
//
// The mutex serializes mutations, the HTTP surface calls in from
// concurrent request goroutines.
type CartService struct {
	mu          sync.Mutex
	repo        port.CartRepository
	lines       []domain.CartLine
	subscribers []CartSubscriber
}

// NewCartService restores prior cart state from the repository.
// Absent or unreadable state yields an empty cart, never an error.
func NewCartService(ctx context.Context, repo port.CartRepository) *CartService {
	const op = "NewCartService"
	log := slog.With("op", op)

	s := &CartService{repo: repo}

	lines, err := repo.LoadCart(ctx)
	if err != nil {
		log.Warn("failed to load prior cart state, starting empty", "err", err)
		return s
	}
	s.lines = lines

	log.Info("cart state restored", "nLines", len(lines))
	return s
}

// AddItem appends a new line snapshotting the product data, or
// increments the quantity of the existing line with the same identity.
// Stock is not checked here, callers validate before the call.
func (s *CartService) AddItem(
	ctx context.Context, p domain.Product, v *domain.CartVariant, quantity int,
) {
	if quantity < 1 {
		quantity = 1
	}

	var variantID string
	if v != nil {
		variantID = v.VariantID
	}
	lineID := domain.LineID(p.ProductID, variantID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.lineIndex(lineID); i >= 0 {
		s.lines[i].Quantity += quantity
		s.afterMutation(ctx)
		return
	}

	line := domain.CartLine{
		LineID:    lineID,
		ProductID: p.ProductID,
		Slug:      p.Slug,
		Title:     p.Title,
		Price:     p.Price,
		Quantity:  quantity,
	}
	if len(p.Images) != 0 {
		line.Image = p.Images[0]
	}
	if v != nil {
		vCopy := *v
		line.Variant = &vCopy
	}

	s.lines = append(s.lines, line)
	s.afterMutation(ctx)
}

// RemoveItem deletes the line if present, no-op otherwise.
func (s *CartService) RemoveItem(ctx context.Context, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.lineIndex(lineID)
	if i < 0 {
		return
	}
	s.lines = slices.Delete(s.lines, i, i+1)
	s.afterMutation(ctx)
}

// UpdateQuantity sets the line quantity to the given absolute value.
// A quantity of zero or less removes the line. Unknown ids are no-ops.
func (s *CartService) UpdateQuantity(
	ctx context.Context, lineID string, quantity int,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.lineIndex(lineID)
	if i < 0 {
		return
	}

	if quantity <= 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
	} else {
		s.lines[i].Quantity = quantity
	}
	s.afterMutation(ctx)
}

// Clear empties all lines.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.afterMutation(ctx)
}

// Lines returns a snapshot of the line list in insertion order.
func (s *CartService) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subtotal recomputes the sum of price times quantity over all lines.
func (s *CartService) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	for _, l := range s.lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

// ItemCount is the total unit count over all lines, not the line count.
func (s *CartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Subscribe registers a subscriber for post-mutation snapshots.
func (s *CartService) Subscribe(fn CartSubscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *CartService) lineIndex(lineID string) int {
	return slices.IndexFunc(s.lines, func(l domain.CartLine) bool {
		return l.LineID == lineID
	})
}

func (s *CartService) snapshot() []domain.CartLine {
	return slices.Clone(s.lines)
}

// afterMutation persists the line list and notifies subscribers.
// Callers hold the mutex. A persistence failure keeps the in-memory
// state authoritative and is logged at the boundary.
func (s *CartService) afterMutation(ctx context.Context) {
	const op = "CartService.afterMutation"

	lines := s.snapshot()

	if err := s.repo.SaveCart(ctx, lines); err != nil {
		slog.Error("failed to persist cart state", "op", op, "err", err)
	}

	for _, fn := range s.subscribers {
		fn(lines)
	}
}
