package tally

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCounter_MostCommon(t *testing.T) {
	c := NewCounter()
	for _, k := range []string{"Meta", "Google", "Amazon", "Google", "Meta", "Apple"} {
		c.Inc(k)
	}

	tests := []struct {
		name string
		n    int
		want []Entry
	}{
		{
			name: "all entries, ties in first-seen order",
			n:    0,
			want: []Entry{{"Meta", 2}, {"Google", 2}, {"Amazon", 1}, {"Apple", 1}},
		},
		{
			name: "limited",
			n:    3,
			want: []Entry{{"Meta", 2}, {"Google", 2}, {"Amazon", 1}},
		},
		{
			name: "limit beyond size",
			n:    10,
			want: []Entry{{"Meta", 2}, {"Google", 2}, {"Amazon", 1}, {"Apple", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.MostCommon(tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MostCommon(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestCounter_GetAndKeys(t *testing.T) {
	c := NewCounter()
	c.Add("DP", 3)
	c.Inc("Graph")

	if c.Get("DP") != 3 || c.Get("Graph") != 1 || c.Get("Heap") != 0 {
		t.Errorf("Get() returned %d/%d/%d", c.Get("DP"), c.Get("Graph"), c.Get("Heap"))
	}
	if got := c.Keys(); !reflect.DeepEqual(got, []string{"DP", "Graph"}) {
		t.Errorf("Keys() = %v", got)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestReduce(t *testing.T) {
	a := NewCounter()
	a.Add("x", 1)
	a.Add("y", 2)
	b := NewCounter()
	b.Add("z", 5)
	b.Add("x", 4)

	got := Reduce(a, b)
	if want := []Entry{{"x", 5}, {"z", 5}, {"y", 2}}; !reflect.DeepEqual(got.MostCommon(0), want) {
		t.Errorf("Reduce() = %v, want %v", got.MostCommon(0), want)
	}
}

func TestEntry_MarshalJSON(t *testing.T) {
	data, err := json.Marshal([]Entry{{"Google", 4}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `[["Google",4]]` {
		t.Errorf("Marshal() = %s", data)
	}
}

func TestCounter_MarshalJSON(t *testing.T) {
	c := NewCounter()
	c.Inc("Meta")
	c.Add("Amazon", 3)
	c.Inc("Meta")

	data, err := json.Marshal(map[string]*Counter{"counts": c, "empty": NewCounter()})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"counts":{"Meta":2,"Amazon":3},"empty":{}}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestWordFrequency(t *testing.T) {
	c := WordFrequency("The Graph question: BFS, BFS and DP! 2024 onsite (a) leetcode")

	tests := []struct {
		word string
		want int
	}{
		{"graph", 1},
		{"bfs", 2},
		{"dp", 1},
		{"question", 1},
		{"onsite", 1},
		{"the", 0},
		{"2024", 0},
		{"a", 0},
		{"leetcode", 0},
	}
	for _, tt := range tests {
		if got := c.Get(tt.word); got != tt.want {
			t.Errorf("count(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestTopKeywords(t *testing.T) {
	got := TopKeywords([]string{"Google onsite graph", "Meta onsite DP", "graph onsite"}, 2)
	if want := []string{"onsite", "graph"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords() = %v, want %v", got, want)
	}
}
