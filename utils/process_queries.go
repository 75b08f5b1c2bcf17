package utils

// ProcessQueries runs every query through FindTopDocuments on a worker
// pool and returns the result lists in input order. The first error, if
// any, is returned and the results discarded.
func ProcessQueries(server *SearchServer, queries []string) ([][]Document, error) {
	results := make([][]Document, len(queries))
	errs := make([]error, len(queries))
	forEachIndexParallel(len(queries), func(i int) {
		results[i], errs[i] = server.FindTopDocuments(queries[i])
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// ProcessQueriesJoined flattens the per-query results of ProcessQueries
// into a single list, preserving query order.
func ProcessQueriesJoined(server *SearchServer, queries []string) ([]Document, error) {
	perQuery, err := ProcessQueries(server, queries)
	if err != nil {
		return nil, err
	}
	var joined []Document
	for _, docs := range perQuery {
		joined = append(joined, docs...)
	}
	return joined, nil
}
