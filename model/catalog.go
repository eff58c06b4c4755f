package model

// RoomType describes one category of inventory. It is immutable for the
// duration of a simulation run; the catalogue is loaded once from the
// scenario configuration.
type RoomType struct {
	// ID is the stable identifier used everywhere else in the simulator
	// (requests, reservations, exports), e.g. "standard" or "suite".
	ID string
	// Count is the total number of rooms of this type.
	Count int
	// Capacity is the maximum party size a single room can host.
	Capacity int
	// BaseRate is the nightly base price in whole currency units,
	// before any seasonal/occupancy/lead-time adjustment.
	BaseRate int
}

// Catalog is an ordered, immutable collection of room types. Order matters:
// the demand generator samples types by index, so iteration order must be
// the declaration order from the scenario for runs to be reproducible.
type Catalog struct {
	types []RoomType
	byID  map[string]int
}

// NewCatalog builds a catalog preserving the given declaration order.
// Duplicate IDs are a configuration error and are rejected upstream by the
// scenario loader; here the last entry would silently win, so callers must
// validate first.
func NewCatalog(types []RoomType) *Catalog {
	c := &Catalog{
		types: make([]RoomType, len(types)),
		byID:  make(map[string]int, len(types)),
	}
	copy(c.types, types)
	for i, rt := range c.types {
		c.byID[rt.ID] = i
	}
	return c
}

// Len returns the number of room types.
func (c *Catalog) Len() int { return len(c.types) }

// At returns the room type at index i in declaration order.
func (c *Catalog) At(i int) RoomType { return c.types[i] }

// Get looks a room type up by ID.
func (c *Catalog) Get(id string) (RoomType, bool) {
	i, ok := c.byID[id]
	if !ok {
		return RoomType{}, false
	}
	return c.types[i], true
}

// Types returns a copy of all room types in declaration order.
func (c *Catalog) Types() []RoomType {
	out := make([]RoomType, len(c.types))
	copy(out, c.types)
	return out
}

// TotalRooms returns the summed room count across all types.
func (c *Catalog) TotalRooms() int {
	total := 0
	for _, rt := range c.types {
		total += rt.Count
	}
	return total
}
