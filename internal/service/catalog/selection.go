package catalog

import (
	"context"
	"sort"
	"sync"

	"showroom/internal/domain/models/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
)

// Selection is a multi-select set over the current listing. Toggling an
// already-selected item removes it, so toggling twice restores the set.
// Safe for concurrent use.
type Selection struct {
	mu    sync.Mutex
	items map[catalog.ItemRef]struct{}
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{items: make(map[catalog.ItemRef]struct{})}
}

// Toggle flips membership of one item
func (s *Selection) Toggle(kind catalog.ItemKind, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := catalog.ItemRef{Kind: kind, ID: id}
	if _, ok := s.items[ref]; ok {
		delete(s.items, ref)
	} else {
		s.items[ref] = struct{}{}
	}
}

// Contains reports whether an item is selected
func (s *Selection) Contains(kind catalog.ItemKind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[catalog.ItemRef{Kind: kind, ID: id}]
	return ok
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[catalog.ItemRef]struct{})
}

// Count returns the number of selected items
func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns the selected refs in a stable order (folders before
// products, then by id)
func (s *Selection) Items() []catalog.ItemRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs := make([]catalog.ItemRef, 0, len(s.items))
	for ref := range s.items {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Kind != refs[j].Kind {
			return refs[i].Kind == catalog.KindFolder
		}
		return refs[i].ID < refs[j].ID
	})
	return refs
}

// SelectionController binds a selection to the bulk operations and enforces
// the lifecycle: every bulk operation clears the selection once it settles,
// whether or not individual items failed. Navigation also clears it, so a
// selection never silently spans folders.
type SelectionController struct {
	selection *Selection
	bulk      catalogSvc.BulkService
}

// NewSelectionController creates a controller over a fresh selection
func NewSelectionController(bulk catalogSvc.BulkService) *SelectionController {
	return &SelectionController{
		selection: NewSelection(),
		bulk:      bulk,
	}
}

// Selection exposes the underlying set for toggling and inspection
func (c *SelectionController) Selection() *Selection {
	return c.selection
}

// Navigate clears the selection when the view moves to another folder
func (c *SelectionController) Navigate() {
	c.selection.Clear()
}

// BulkMove moves the selected items into targetID and clears the selection
// after the operation settles. A pre-dispatch rejection (cycle) keeps the
// selection intact so the user can pick a different target.
func (c *SelectionController) BulkMove(ctx context.Context, ownerID string, targetID *string) (*catalogSvc.BulkResult, error) {
	result, err := c.bulk.Move(ctx, ownerID, c.selection.Items(), targetID)
	if err != nil {
		return nil, err
	}
	c.selection.Clear()
	return result, nil
}

// BulkDelete deletes the selected items and clears the selection
func (c *SelectionController) BulkDelete(ctx context.Context, ownerID string) (*catalogSvc.BulkResult, error) {
	result, err := c.bulk.Delete(ctx, ownerID, c.selection.Items())
	if err != nil {
		return nil, err
	}
	c.selection.Clear()
	return result, nil
}

// BulkShare collects share links for the selected products and clears the
// selection
func (c *SelectionController) BulkShare(ctx context.Context, ownerID string) (*catalogSvc.BulkResult, error) {
	result, err := c.bulk.Share(ctx, ownerID, c.selection.Items())
	if err != nil {
		return nil, err
	}
	c.selection.Clear()
	return result, nil
}
