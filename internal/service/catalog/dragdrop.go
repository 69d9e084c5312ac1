package catalog

import (
	"fmt"
	"sync"

	"showroom/internal/domain"
	"showroom/internal/domain/models/catalog"
)

// DragPhase is the drag gesture state
type DragPhase int

const (
	PhaseIdle DragPhase = iota
	PhaseDragging
)

// DropAction is what a settled drop asks the caller to do
type DropAction int

const (
	// ActionNone means the gesture resolved without a mutation (cancelled,
	// dropped on itself, or released outside any target)
	ActionNone DropAction = iota

	// ActionMove means the dragged item should move into TargetFolderID
	ActionMove

	// ActionReorder means the item was dropped on a sibling card; ordering
	// is presentational only, so no mutation follows
	ActionReorder
)

// DropOutcome is the resolution of one drag gesture
type DropOutcome struct {
	Action         DropAction
	Item           catalog.ItemRef
	TargetFolderID *string
}

// DragController is the drag-and-drop state machine: Idle until a card is
// picked up, Dragging until the gesture ends. It decides what a drop means
// but performs no mutation itself; the caller dispatches the move the
// outcome asks for. Safe for concurrent use.
type DragController struct {
	mu    sync.Mutex
	phase DragPhase
	item  catalog.ItemRef
}

// NewDragController creates an idle controller
func NewDragController() *DragController {
	return &DragController{}
}

// Phase returns the current gesture state
func (c *DragController) Phase() DragPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Begin starts a drag with the given item. Beginning while a drag is active
// restarts the gesture with the new item.
func (c *DragController) Begin(item catalog.ItemRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseDragging
	c.item = item
}

// Cancel ends the gesture without any action
func (c *DragController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseIdle
	c.item = catalog.ItemRef{}
}

// Drop resolves the gesture against a target card. folders is the dragged
// owner's flat folder set, needed for the cycle guard when a folder lands on
// another folder.
//
// Rules: a nil target or a drop on the dragged card itself resolves to
// ActionNone. A folder-card target means "move into that folder", rejected
// with domain.ErrCycle (gesture still active, state unchanged) when the
// target sits inside the dragged folder's subtree. A product-card target is
// a sibling reorder.
func (c *DragController) Drop(target *catalog.ItemRef, folders []catalog.Folder) (DropOutcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseDragging {
		return DropOutcome{}, fmt.Errorf("%w: no drag in progress", domain.ErrValidation)
	}

	item := c.item

	if target == nil || *target == item {
		c.reset()
		return DropOutcome{Action: ActionNone, Item: item}, nil
	}

	if target.Kind == catalog.KindFolder {
		if item.Kind == catalog.KindFolder {
			inside, err := IsDescendant(folders, item.ID, target.ID)
			if err != nil {
				c.reset()
				return DropOutcome{}, err
			}
			if inside {
				return DropOutcome{}, fmt.Errorf("folder %s cannot move into its own subtree: %w", item.ID, domain.ErrCycle)
			}
		}
		c.reset()
		targetID := target.ID
		return DropOutcome{Action: ActionMove, Item: item, TargetFolderID: &targetID}, nil
	}

	c.reset()
	return DropOutcome{Action: ActionReorder, Item: item}, nil
}

// reset returns to idle; callers hold the lock
func (c *DragController) reset() {
	c.phase = PhaseIdle
	c.item = catalog.ItemRef{}
}
