package utils

// MinutesInDay is the size of the rolling request window.
const MinutesInDay = 1440

// RequestQueue wraps a SearchServer and keeps a record of the last
// MinutesInDay find requests, one per minute of a day. It answers how many
// of the recorded requests produced no results.
type RequestQueue struct {
	server   *SearchServer
	requests []bool // emptiness flag per recorded request, oldest first
	noResult int
}

// NewRequestQueue creates a request queue over server.
func NewRequestQueue(server *SearchServer) *RequestQueue {
	return &RequestQueue{server: server}
}

// AddFindRequest forwards to FindTopDocuments and records the result.
func (q *RequestQueue) AddFindRequest(rawQuery string) ([]Document, error) {
	docs, err := q.server.FindTopDocuments(rawQuery)
	q.record(docs, err)
	return docs, err
}

// AddFindRequestByStatus forwards to FindTopDocumentsByStatus and records
// the result.
func (q *RequestQueue) AddFindRequestByStatus(rawQuery string, status DocumentStatus) ([]Document, error) {
	docs, err := q.server.FindTopDocumentsByStatus(rawQuery, status)
	q.record(docs, err)
	return docs, err
}

// AddFindRequestFunc forwards to FindTopDocumentsFunc and records the
// result.
func (q *RequestQueue) AddFindRequestFunc(rawQuery string, predicate DocumentPredicate) ([]Document, error) {
	docs, err := q.server.FindTopDocumentsFunc(rawQuery, predicate)
	q.record(docs, err)
	return docs, err
}

// NoResultRequests reports how many recorded requests returned nothing.
func (q *RequestQueue) NoResultRequests() int {
	return q.noResult
}

// record appends the emptiness flag of one request, evicting the oldest
// entry once the window is full. A failed request counts as empty.
func (q *RequestQueue) record(docs []Document, err error) {
	empty := err != nil || len(docs) == 0
	if len(q.requests) == MinutesInDay {
		if q.requests[0] {
			q.noResult--
		}
		q.requests = q.requests[1:]
	}
	q.requests = append(q.requests, empty)
	if empty {
		q.noResult++
	}
}
