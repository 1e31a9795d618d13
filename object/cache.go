package object

// Per-call-site dispatch caching.
//
// Most call sites only ever see one receiver type, so resolving a method
// name to a slot and implementation once and memoizing the result pays off
// in hot loops. The cache progresses through the usual states:
// Empty -> Monomorphic -> Polymorphic -> Megamorphic.

// CacheState represents the current state of a dispatch cache.
type CacheState uint8

const (
	CacheEmpty       CacheState = iota // No cached lookup yet
	CacheMonomorphic                   // Single (type, impl) cached
	CachePolymorphic                   // 2-4 entries
	CacheMegamorphic                   // Too many types, always full lookup
)

// MaxPolyEntries is the maximum number of entries in a polymorphic cache.
const MaxPolyEntries = 4

// cacheEntry holds a single memoized lookup result. The slot is recorded
// per entry because receivers of different interfaces may pass through the
// same call site.
type cacheEntry struct {
	typ  *Type
	slot int
	fn   MethodFunc
}

// DispatchCache memoizes method resolution for one call site and one method
// name. Not safe for concurrent use.
type DispatchCache struct {
	method string

	state   CacheState
	entries [MaxPolyEntries]cacheEntry
	count   int

	// Statistics for profiling
	Hits   uint64
	Misses uint64
}

// NewDispatchCache creates a cache for one method name.
func NewDispatchCache(method string) *DispatchCache {
	return &DispatchCache{method: method}
}

// Call dispatches through the cache, falling back to (and memoizing) a full
// vtable lookup on miss. Results are identical to Handle.Call.
func (c *DispatchCache) Call(h Handle, args ...Value) (Value, error) {
	if h.Destroyed() {
		return h.Call(c.method, args...) // let Call produce the fault
	}

	typ := h.inst.typ
	if e := c.lookup(typ); e != nil {
		sig := h.vt.iface.Sig(e.slot)
		if sig.NumArgs != len(args) {
			return nil, &ArityError{
				Interface: h.vt.iface.name,
				Method:    c.method,
				Want:      sig.NumArgs,
				Got:       len(args),
			}
		}
		return e.fn(h.inst, args), nil
	}

	// Full lookup, then memoize. Unresolved and unknown methods are never
	// cached; they must keep producing their fault every time.
	slot := h.vt.iface.Slot(c.method)
	if slot < 0 {
		return nil, &UnknownMethodError{Interface: h.vt.iface.name, Method: c.method}
	}
	v, err := h.vt.Invoke(h.inst, slot, args)
	if err == nil {
		c.update(typ, slot, h.vt.slots[slot])
	}
	return v, err
}

// lookup checks the cache for the receiver type. Returns nil on miss.
func (c *DispatchCache) lookup(typ *Type) *cacheEntry {
	switch c.state {
	case CacheMonomorphic:
		if c.entries[0].typ == typ {
			c.Hits++
			return &c.entries[0]
		}

	case CachePolymorphic:
		for i := 0; i < c.count; i++ {
			if c.entries[i].typ == typ {
				c.Hits++
				return &c.entries[i]
			}
		}

	case CacheMegamorphic, CacheEmpty:
		// Always miss
	}

	c.Misses++
	return nil
}

// update records a new (type, slot, impl) entry, upgrading the cache state.
func (c *DispatchCache) update(typ *Type, slot int, fn MethodFunc) {
	if fn == nil {
		return
	}

	switch c.state {
	case CacheEmpty:
		c.state = CacheMonomorphic
		c.entries[0] = cacheEntry{typ: typ, slot: slot, fn: fn}
		c.count = 1

	case CacheMonomorphic:
		if c.entries[0].typ == typ {
			return
		}
		c.state = CachePolymorphic
		c.entries[1] = cacheEntry{typ: typ, slot: slot, fn: fn}
		c.count = 2

	case CachePolymorphic:
		for i := 0; i < c.count; i++ {
			if c.entries[i].typ == typ {
				return
			}
		}
		if c.count < MaxPolyEntries {
			c.entries[c.count] = cacheEntry{typ: typ, slot: slot, fn: fn}
			c.count++
			return
		}
		// Too many receiver types for this site.
		c.state = CacheMegamorphic

	case CacheMegamorphic:
		// Stays megamorphic
	}
}

// State returns the current cache state.
func (c *DispatchCache) State() CacheState { return c.state }
