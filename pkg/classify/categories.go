package classify

import "github.com/dtnitsch/discuss-feed/models"

// Other collects items that match no category keyword.
const Other = "Other"

// DefaultCategories is the built-in topic table, used when the project has no
// config/categories.json.
func DefaultCategories() []models.Category {
	return []models.Category{
		{Name: "Graph", Keywords: []string{"graph", "bfs", "dfs", "shortest path", "topological", "dijkstra", "union find", "disjoint set", "mst", "prim", "kruskal"}},
		{Name: "DP", Keywords: []string{"dp", "dynamic programming", "knapsack", "lcs", "lis", "matrix chain", "memoization", "tabulation"}},
		{Name: "String", Keywords: []string{"string", "substr", "substring", "palindrome", "anagram", "edit distance", "kmp", "rabin-karp", "rolling hash"}},
		{Name: "Array", Keywords: []string{"array", "subarray", "prefix sum", "two sum", "interval", "range sum", "matrix"}},
		{Name: "Greedy", Keywords: []string{"greedy", "interval scheduling", "activity selection", "candies"}},
		{Name: "Two Pointers", Keywords: []string{"two pointers", "two-pointer", "fast slow", "slow fast", "sliding window", "window"}},
		{Name: "Heap", Keywords: []string{"heap", "priority queue", "pq", "top k"}},
		{Name: "Tree", Keywords: []string{"tree", "bst", "trie", "segment tree", "fenwick", "binary tree"}},
		{Name: "SQL", Keywords: []string{"sql", "join", "group by", "window function", "cte"}},
		{Name: "System Design", Keywords: []string{
			"system design", "design", "scale", "scalable", "sharding", "partition", "load balancer", "cdn", "cache",
			"consistent hashing", "rate limit", "message queue", "kafka", "pubsub", "throughput", "latency",
		}},
		{Name: "Concurrency", Keywords: []string{"concurrency", "mutex", "lock", "semaphore", "deadlock", "race condition", "thread"}},
		{Name: "Math", Keywords: []string{"math", "prime", "gcd", "lcm", "mod", "probability", "combinatorics"}},
		{Name: "Sorting", Keywords: []string{"sort", "quicksort", "merge sort", "bucket sort", "radix"}},
		{Name: Other},
	}
}
