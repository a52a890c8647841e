// Package inventory implements a fixed-size slot container with a selection
// cursor. The player keeps its weapon set in one.
package inventory

// Named is implemented by anything stored in an inventory. Names are unique
// within one inventory.
type Named interface {
	Name() string
}

// Inventory is an ordered set of at most Cap() items.
type Inventory[T Named] struct {
	items    []T
	slots    int
	selected int
}

// New creates an inventory with the given number of slots (minimum 1).
func New[T Named](slots int) *Inventory[T] {
	if slots < 1 {
		slots = 1
	}
	return &Inventory[T]{
		items:    make([]T, 0, slots),
		slots:    slots,
		selected: -1,
	}
}

// Add appends an item. It returns false when the inventory is full or an
// item with the same name is already held. The first item added becomes the
// selection.
func (inv *Inventory[T]) Add(item T) bool {
	if len(inv.items) >= inv.slots {
		return false
	}
	if _, ok := inv.Find(item.Name()); ok {
		return false
	}
	inv.items = append(inv.items, item)
	if inv.selected < 0 {
		inv.selected = 0
	}
	return true
}

// Remove drops the item at index i and returns it.
func (inv *Inventory[T]) Remove(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(inv.items) {
		return zero, false
	}
	item := inv.items[i]
	inv.items = append(inv.items[:i], inv.items[i+1:]...)

	switch {
	case len(inv.items) == 0:
		inv.selected = -1
	case inv.selected > i || inv.selected >= len(inv.items):
		inv.selected--
	}
	return item, true
}

// Get returns the item at index i.
func (inv *Inventory[T]) Get(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(inv.items) {
		return zero, false
	}
	return inv.items[i], true
}

// Find returns the index of the item with the given name.
func (inv *Inventory[T]) Find(name string) (int, bool) {
	for i, it := range inv.items {
		if it.Name() == name {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of held items.
func (inv *Inventory[T]) Len() int {
	return len(inv.items)
}

// Cap returns the number of slots.
func (inv *Inventory[T]) Cap() int {
	return inv.slots
}

// Full reports whether every slot is taken.
func (inv *Inventory[T]) Full() bool {
	return len(inv.items) >= inv.slots
}

// Selected returns the selected index, or -1 when empty.
func (inv *Inventory[T]) Selected() int {
	return inv.selected
}

// Select moves the cursor to index i. Empty slots cannot be selected.
func (inv *Inventory[T]) Select(i int) bool {
	if i < 0 || i >= len(inv.items) {
		return false
	}
	inv.selected = i
	return true
}

// Next selects the following item, wrapping around.
func (inv *Inventory[T]) Next() {
	if len(inv.items) == 0 {
		return
	}
	inv.selected = (inv.selected + 1) % len(inv.items)
}

// Prev selects the preceding item, wrapping around.
func (inv *Inventory[T]) Prev() {
	if len(inv.items) == 0 {
		return
	}
	inv.selected = (inv.selected - 1 + len(inv.items)) % len(inv.items)
}

// Current returns the selected item.
func (inv *Inventory[T]) Current() (T, bool) {
	return inv.Get(inv.selected)
}

// Items returns a copy of the held items in slot order.
func (inv *Inventory[T]) Items() []T {
	out := make([]T, len(inv.items))
	copy(out, inv.items)
	return out
}
