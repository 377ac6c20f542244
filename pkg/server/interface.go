/*
Package server implements the msgpack IPC frontend over stdin/stdout.

Clients write a stream of msgpack maps and read one response map per request, in
order. Every request carries an id, echoed in the response, and an action:

	{"id": "r1", "action": "anagrams", "letters": "cats", "min": 3, "max": 4}
	{"id": "r1", "w": ["act", "cat", "cats"], "c": 3, "t": 41}

	{"id": "r2", "action": "filter", "words": ["cat", "xyz"]}
	{"id": "r2", "v": ["cat"], "c": 1}

	{"id": "r3", "action": "hunt", "grid": ["ca", "ts"]}
	{"id": "r3", "m": [{"w": "cats", "p": [[0, 0], [0, 1], [1, 0], [1, 1]]}], "c": 1, "t": 12}

	{"id": "r4", "action": "info"}
	{"id": "r4", "status": "ok", "words": 172820, "cache": {"cacheHits": 3, ...}}

Failures come back as {"id": ..., "e": message, "c": code}, with 400 for bad requests
and 500/503 otherwise. A {"status": "ready"} map is written before the first request
is read, and the loop ends cleanly at EOF. t is the search time in microseconds.

Requests without an id get a generated one so responses can still be correlated.
*/
package server

import "github.com/mkzafar/wordgames/pkg/hunt"

// Request is the union of all request shapes; Action selects which fields matter.
type Request struct {
	ID      string   `msgpack:"id"`
	Action  string   `msgpack:"action"`
	Letters string   `msgpack:"letters,omitempty"`
	Min     int      `msgpack:"min,omitempty"`
	Max     int      `msgpack:"max,omitempty"`
	Words   []string `msgpack:"words,omitempty"`
	Grid    []string `msgpack:"grid,omitempty"`
}

// AnagramResponse answers an "anagrams" request.
type AnagramResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"w"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// FilterResponse answers a "filter" request.
type FilterResponse struct {
	ID    string   `msgpack:"id"`
	Valid []string `msgpack:"v"`
	Count int      `msgpack:"c"`
}

// HuntResponse answers a "hunt" request.
type HuntResponse struct {
	ID        string       `msgpack:"id"`
	Matches   []hunt.Match `msgpack:"m"`
	Count     int          `msgpack:"c"`
	TimeTaken int64        `msgpack:"t"`
}

// InfoResponse answers an "info" request.
// Cache carries the result cache counters when the server searches through one.
type InfoResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Words  int            `msgpack:"words"`
	Cache  map[string]int `msgpack:"cache,omitempty"`
}

// ErrorResponse is sent instead of the normal response when a request fails.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
