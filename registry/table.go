package registry

import (
	"sync"

	"go.uber.org/zap"

	textbridge "github.com/annotext/textbridge"
)

// Handle is an opaque reference to a live engine instance. Handle 0 is
// reserved and always invalid. The upper 32 bits carry the slot index
// plus one, the lower 32 bits the slot's generation at creation time, so
// a handle goes stale the moment its slot is destroyed or reused.
type Handle uint64

// Invalid is the null handle. Every operation against it is a no-op
// returning the neutral value.
const Invalid Handle = 0

type slot struct {
	engine textbridge.Engine
	gen    uint32
	live   bool
}

// Table owns engine instances behind generation-tagged handles.
// A destroyed or stale handle simply misses; there is no undefined
// behavior for double-destroy or use-after-destroy.
type Table struct {
	loader   textbridge.Loader
	log      *zap.Logger
	mu       sync.RWMutex
	slots    []slot
	freeList []uint32
	closed   bool
}

// New creates a table that constructs engines with loader. A nil logger
// is replaced by a nop logger.
func New(loader textbridge.Loader, log *zap.Logger) *Table {
	if log == nil {
		log = zap.NewNop()
	}
	return &Table{
		loader:   loader,
		log:      log,
		slots:    make([]slot, 0, 16),
		freeList: make([]uint32, 0, 8),
	}
}

// Create loads an engine from src and returns its handle. Returns Invalid
// if the loader fails or the table is closed; a returned handle is always
// fully usable.
func (t *Table) Create(src textbridge.Source) Handle {
	if t.loader == nil {
		return Invalid
	}

	t.mu.RLock()
	closed := t.closed
	t.mu.RUnlock()
	if closed {
		return Invalid
	}

	// Loading may block on I/O; keep it outside the lock.
	engine, err := t.loader.Load(src)
	if err != nil || engine == nil {
		t.log.Debug("engine load failed",
			zap.Stringer("source", src),
			zap.Error(err))
		return Invalid
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		if cerr := engine.Close(); cerr != nil {
			t.log.Warn("engine close failed", zap.Error(cerr))
		}
		return Invalid
	}

	var idx uint32
	if n := len(t.freeList); n > 0 {
		idx = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.slots[idx].engine = engine
		t.slots[idx].live = true
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot{engine: engine, gen: 1, live: true})
	}
	h := makeHandle(idx, t.slots[idx].gen)
	t.mu.Unlock()

	return h
}

// Get returns the engine for h, or (nil, false) if h is invalid, stale,
// or destroyed.
func (t *Table) Get(h Handle) (textbridge.Engine, bool) {
	idx, gen, ok := splitHandle(h)
	if !ok {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if int(idx) >= len(t.slots) {
		return nil, false
	}
	s := t.slots[idx]
	if !s.live || s.gen != gen {
		return nil, false
	}
	return s.engine, true
}

// Destroy releases the engine behind h. Returns false if h is invalid,
// stale, or already destroyed. The slot's generation advances so the
// handle can never resolve again, even after slot reuse.
func (t *Table) Destroy(h Handle) bool {
	idx, gen, ok := splitHandle(h)
	if !ok {
		return false
	}

	t.mu.Lock()
	if int(idx) >= len(t.slots) {
		t.mu.Unlock()
		return false
	}
	s := &t.slots[idx]
	if !s.live || s.gen != gen {
		t.mu.Unlock()
		return false
	}

	engine := s.engine
	s.engine = nil
	s.live = false
	s.gen++
	t.freeList = append(t.freeList, idx)
	t.mu.Unlock()

	if err := engine.Close(); err != nil {
		t.log.Warn("engine close failed", zap.Error(err))
	}
	return true
}

// Len returns the number of live engines.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, s := range t.slots {
		if s.live {
			n++
		}
	}
	return n
}

// Close destroys all live engines and stops accepting operations.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true

	var engines []textbridge.Engine
	for i := range t.slots {
		if t.slots[i].live {
			engines = append(engines, t.slots[i].engine)
			t.slots[i].engine = nil
			t.slots[i].live = false
			t.slots[i].gen++
		}
	}
	t.slots = nil
	t.freeList = nil
	t.mu.Unlock()

	for _, e := range engines {
		if err := e.Close(); err != nil {
			t.log.Warn("engine close failed", zap.Error(err))
		}
	}
	return nil
}

func makeHandle(idx, gen uint32) Handle {
	return Handle(uint64(idx+1)<<32 | uint64(gen))
}

func splitHandle(h Handle) (idx, gen uint32, ok bool) {
	if h == Invalid {
		return 0, 0, false
	}
	hi := uint32(uint64(h) >> 32)
	if hi == 0 {
		return 0, 0, false
	}
	return hi - 1, uint32(uint64(h) & 0xFFFFFFFF), true
}
