// Package batch answers many range queries against one table concurrently.
//
//	ranges := []batch.Range{{Begin: 0, End: 10}, {Begin: 5, End: 7}}
//	values, err := batch.Run(ctx, tbl, ranges, batch.Options{Concurrency: 4})
//
// Results keep the order of the input ranges. The first invalid range cancels
// the remaining work and its error is returned.
package batch
