/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/suparena/resthub/storagemodels"
)

// PageFunc loads the page at cursor. A nil next cursor ends the stream.
type PageFunc[T any] func(ctx context.Context, cursor any, limit int32) (items []T, next any, err error)

// StreamPages drives fetch page by page and delivers the items on the
// returned channel, which is closed when the pages are exhausted, on a fatal
// error or when ctx is done. retryable decides which fetch errors are retried;
// nil retries nothing.
func StreamPages[T any](ctx context.Context, fetch PageFunc[T], retryable func(error) bool, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.ApplyStreamOptions(opts...)
	if options.BufferSize < 0 {
		options.BufferSize = 0
	}
	if options.PageSize <= 0 {
		options.PageSize = storagemodels.DefaultStreamOptions().PageSize
	}
	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)
	go streamWorker(ctx, fetch, retryable, options, resultCh)
	return resultCh
}

func streamWorker[T any](
	ctx context.Context,
	fetch PageFunc[T],
	retryable func(error) bool,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var itemIndex int64
	var pageNumber int
	var errs []error
	startTime := time.Now()

	reportProgress := func(cursor any) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: atomic.LoadInt64(&itemIndex),
			PagesProcessed: pageNumber,
			Cursor:         cursor,
			Errors:         errs,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	fail := func(err error) {
		select {
		case <-ctx.Done():
		case resultCh <- storagemodels.StreamResult[T]{
			Error: err,
			Meta: storagemodels.StreamMeta{
				Index:      atomic.LoadInt64(&itemIndex),
				PageNumber: pageNumber,
				Timestamp:  time.Now(),
			},
		}:
		}
	}

	var cursor any
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		items, next, err := fetchWithRetry(ctx, fetch, retryable, cursor, options)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if options.ErrorHandler == nil || !options.ErrorHandler(err) {
				fail(fmt.Errorf("stream page %d: %w", pageNumber+1, err))
				return
			}
			// Skip the failed page when the fetcher still knows where the next one starts.
			errs = append(errs, err)
			if next == nil {
				reportProgress(nil)
				return
			}
			cursor = next
			continue
		}

		pageNumber++
		for _, item := range items {
			result := storagemodels.StreamResult[T]{
				Item: item,
				Meta: storagemodels.StreamMeta{
					Index:      atomic.LoadInt64(&itemIndex),
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}
			atomic.AddInt64(&itemIndex, 1)

			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}
		}

		reportProgress(next)
		if next == nil {
			return
		}
		cursor = next
	}
}

func fetchWithRetry[T any](
	ctx context.Context,
	fetch PageFunc[T],
	retryable func(error) bool,
	cursor any,
	options storagemodels.StreamOptions,
) ([]T, any, error) {
	var lastErr error
	var lastNext any

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		items, next, err := fetch(ctx, cursor, options.PageSize)
		if err == nil {
			return items, next, nil
		}
		lastErr, lastNext = err, next

		if retryable == nil || !retryable(err) {
			return nil, next, err
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, lastNext, fmt.Errorf("failed after %d retries: %w", options.MaxRetries, lastErr)
}
