package cache

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrKeyExists   = errors.New("key already exists in cache")
	ErrOverBudget  = errors.New("entry weight exceeds cache budget")
	ErrInvalidSize = errors.New("entry weight must be positive")
)

// Cache is a weighted LRU. Entries are evicted from the least recently used
// end until the total weight fits the budget.
type Cache interface {
	SetVerbose(verbose bool)
	GetWeight() int
	GetBudget() int
	Len() int
	Insert(key string, value interface{}, weight int) error
	Retrieve(key string) (interface{}, bool)
	Remove(key string) bool
	Clear()
}

type entry struct {
	next, prev *entry
	key        string
	value      interface{}
	weight     int
}

type cache struct {
	log *logrus.Entry

	mu      sync.Mutex
	head    *entry
	tail    *entry
	lookup  map[string]*entry
	weight  int
	budget  int
	verbose bool
}

func NewCache(budget int) Cache {
	return &cache{
		log:    logrus.StandardLogger().WithField("type", "cache"),
		lookup: make(map[string]*entry),
		budget: budget,
	}
}

func (c *cache) SetVerbose(verbose bool) {
	c.mu.Lock()
	c.verbose = verbose
	c.mu.Unlock()
}

func (c *cache) GetWeight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weight
}

func (c *cache) GetBudget() int {
	return c.budget
}

func (c *cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lookup)
}

// Insert adds a new entry at the most recently used end. Existing keys are
// not replaced.
func (c *cache) Insert(key string, value interface{}, weight int) error {
	if weight <= 0 {
		return ErrInvalidSize
	}
	if weight > c.budget {
		return ErrOverBudget
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lookup[key]; ok {
		return ErrKeyExists
	}

	e := &entry{key: key, value: value, weight: weight}
	c.pushFront(e)
	c.lookup[key] = e
	c.weight += weight

	for c.weight > c.budget && c.tail != nil {
		evicted := c.tail
		c.unlink(evicted)
		delete(c.lookup, evicted.key)
		c.weight -= evicted.weight

		if c.verbose {
			c.log.WithFields(logrus.Fields{
				"key":    evicted.key,
				"weight": evicted.weight,
				"spare":  c.budget - c.weight,
			}).Debug("evicted cache entry")
		}
	}

	return nil
}

// Retrieve returns the value for key and marks it most recently used.
func (c *cache) Retrieve(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookup[key]
	if !ok {
		return nil, false
	}

	if e != c.head {
		c.unlink(e)
		c.pushFront(e)
	}
	return e.value, true
}

func (c *cache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookup[key]
	if !ok {
		return false
	}

	c.unlink(e)
	delete(c.lookup, key)
	c.weight -= e.weight
	return true
}

func (c *cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.head = nil
	c.tail = nil
	c.lookup = make(map[string]*entry)
	c.weight = 0
}

func (c *cache) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *cache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.next = nil
	e.prev = nil
}
