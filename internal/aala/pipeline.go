package aala

import (
	"context"
	"sort"
	"sync"
)

// Result is the aggregated output of one pipeline run: every assembled
// record, the drop tally by reason, and the classification counts. Records
// are ordered by year, then by source row order within the year.
type Result struct {
	Records    []Record
	Drops      map[string]int
	Classified map[RowKind]int
}

// DataRows returns the number of rows that were classified as data rows and
// therefore offered to the assembler. It always equals
// len(Records) + sum(Drops).
func (r *Result) DataRows() int {
	return r.Classified[RowData]
}

// DroppedTotal returns the total number of data rows dropped.
func (r *Result) DroppedTotal() int {
	total := 0
	for _, n := range r.Drops {
		total += n
	}
	return total
}

// Driver runs classification and assembly over every raw row of every year
// and accumulates the final table. Rows are independent; years are processed
// concurrently, bounded by the worker limit.
type Driver struct {
	classifier *Classifier
	assembler  *Assembler
	workers    int
}

// NewDriver wires a driver from its stages. workers bounds per-year
// concurrency; values below 1 mean sequential processing.
func NewDriver(classifier *Classifier, assembler *Assembler, workers int) *Driver {
	if workers < 1 {
		workers = 1
	}
	return &Driver{
		classifier: classifier,
		assembler:  assembler,
		workers:    workers,
	}
}

// yearOutput is the result of one year's unit of work.
type yearOutput struct {
	records    []Record
	drops      map[string]int
	classified map[RowKind]int
}

// Run processes all rows grouped by year. Per-row failures are local: they
// update the tally and never abort sibling rows or other years. Cancelling
// the context abandons years not yet started; years already processed remain
// in the result.
func (d *Driver) Run(ctx context.Context, rowsByYear map[int][]RawRow) *Result {
	years := make([]int, 0, len(rowsByYear))
	for year := range rowsByYear {
		years = append(years, year)
	}
	sort.Ints(years)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		outputs = make(map[int]yearOutput, len(years))
		sem     = make(chan struct{}, d.workers)
	)

	for _, year := range years {
		select {
		case <-ctx.Done():
		default:
			wg.Add(1)
			sem <- struct{}{}
			go func(year int, rows []RawRow) {
				defer wg.Done()
				defer func() { <-sem }()

				out := d.processYear(rows)

				mu.Lock()
				outputs[year] = out
				mu.Unlock()
			}(year, rowsByYear[year])
		}
	}
	wg.Wait()

	result := &Result{
		Drops:      make(map[string]int),
		Classified: make(map[RowKind]int),
	}
	for _, year := range years {
		out, ok := outputs[year]
		if !ok {
			continue
		}
		result.Records = append(result.Records, out.records...)
		for reason, n := range out.drops {
			result.Drops[reason] += n
		}
		for kind, n := range out.classified {
			result.Classified[kind] += n
		}
	}
	return result
}

// processYear classifies and assembles one year's rows in source order.
func (d *Driver) processYear(rows []RawRow) yearOutput {
	out := yearOutput{
		drops:      make(map[string]int),
		classified: make(map[RowKind]int),
	}

	for _, row := range rows {
		kind := d.classifier.Classify(row)
		out.classified[kind]++
		if kind != RowData {
			continue
		}

		record, reason := d.assembler.Assemble(row)
		if reason != "" {
			out.drops[reason]++
			continue
		}
		out.records = append(out.records, record)
	}
	return out
}
