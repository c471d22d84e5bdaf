// Package preprocess provides in-memory tabular data preprocessing.
// It wraps one mutable table and exposes four independent, composable
// transformation operations plus a snapshot accessor.
//
// # Architecture
//
// The package has a single component, the Preprocessor:
//
// 1. FillMissing: resolves missing cells by mean, median, most-frequent, or constant imputation
// 2. RemoveDuplicates: removes exact duplicate rows, keeping first occurrences
// 3. EncodeCategorical: label-encodes categorical columns as deterministic integer codes
// 4. NormalizeNumerical: z-score standardizes numerical columns
//
// # Usage
//
//	table, err := domain.NewTable(columns)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pre, err := preprocess.New(table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := pre.FillMissing(ctx, preprocess.FillOptions{Strategy: preprocess.StrategyMean}); err != nil {
//	    log.Fatal(err)
//	}
//	pre.RemoveDuplicates(ctx)
//	pre.EncodeCategorical(ctx)
//	pre.NormalizeNumerical(ctx)
//
//	clean := pre.CleanData()
//
// # Mutation model
//
// The Preprocessor holds a live handle to the caller's table, not a copy.
// Every operation mutates the table in place and is observable through the
// caller's original object; CleanData is the only way to obtain an isolated
// snapshot. Operations may be invoked independently, in any order, zero or
// more times. Nothing here is safe for concurrent use; the design assumes
// one logical owner invoking operations sequentially.
//
// # Error Handling
//
// Malformed construction input and malformed operation arguments abort the
// call with a typed error. Column-local failures during encoding and
// normalization are collected into a structured per-column report and never
// abort sibling columns.
package preprocess
