// Package tally counts keys while remembering the order they first appeared,
// so rankings with equal counts come out in a stable, meaningful order.
package tally

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Counter is an insertion-ordered multiset.
type Counter struct {
	order  []string
	counts map[string]int
}

// Entry is one ranked key.
type Entry struct {
	Key   string
	Count int
}

// MarshalJSON renders an entry as a [key, count] pair.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Key, e.Count})
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add increments key by n.
func (c *Counter) Add(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// Inc increments key by one.
func (c *Counter) Inc(key string) {
	c.Add(key, 1)
}

// Get returns the count for key, zero if absent.
func (c *Counter) Get(key string) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.order)
}

// Keys returns keys in first-seen order.
func (c *Counter) Keys() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// MarshalJSON renders the counter as an object with keys in first-seen
// order.
func (c *Counter) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(c.counts[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MostCommon returns up to n entries by descending count; ties keep
// first-seen order. n <= 0 returns every entry.
func (c *Counter) MostCommon(n int) []Entry {
	entries := make([]Entry, len(c.order))
	for i, k := range c.order {
		entries[i] = Entry{Key: k, Count: c.counts[k]}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Reduce merges counters, keeping the first-seen order across them.
func Reduce(counters ...*Counter) *Counter {
	out := NewCounter()
	for _, c := range counters {
		for _, k := range c.order {
			out.Add(k, c.counts[k])
		}
	}
	return out
}
