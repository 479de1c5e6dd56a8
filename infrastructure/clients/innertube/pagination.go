package innertube

import (
	"context"

	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/infrastructure/logger"
)

// fetchPage issues one continuation call for a token. alternate selects the
// secondary RPC surface, tried exactly once per stalled token because some
// token chains are only honored there.
type fetchPage func(ctx context.Context, token string, alternate bool) ([]byte, error)

// paginator drives multi-page retrieval over continuation tokens. Tokens
// are consumed strictly in FIFO order within one run — later tokens are only
// valid in light of session state mutated by earlier responses — while
// independent runs are free to execute concurrently.
type paginator struct {
	kind    Kind
	fetch   fetchPage
	observe func(payload []byte)
	ceiling int
}

// run seeds the accumulator from an already-fetched first page and follows
// continuations until minCount unique records are collected, the token
// queue drains, or the page ceiling guarantees termination.
func (p *paginator) run(ctx context.Context, seed []byte, minCount int) []model.Video {
	var (
		queue []string
		seen  = make(map[string]struct{})
		index = make(map[string]int)
		items []model.Video
	)
	enqueue := func(tokens []string) {
		for _, token := range tokens {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			queue = append(queue, token)
		}
	}
	absorb := func(videos []model.Video) int {
		fresh := 0
		for _, v := range videos {
			if at, ok := index[v.ID]; ok {
				// A repeat sighting may carry fields the first one lacked.
				items[at] = items[at].Merge(v)
				continue
			}
			index[v.ID] = len(items)
			items = append(items, v)
			fresh++
		}
		return fresh
	}

	if p.observe != nil {
		p.observe(seed)
	}
	absorb(ExtractVideos(seed, p.kind))
	enqueue(ExtractContinuations(seed))

	pages := 0
	for len(items) < minCount && len(queue) > 0 && pages < p.ceiling {
		if ctx.Err() != nil {
			break
		}
		token := queue[0]
		queue = queue[1:]
		pages++

		payload, err := p.fetch(ctx, token, false)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Continuation fetch failed, stopping pagination")
			break
		}
		if p.observe != nil {
			p.observe(payload)
		}
		fresh := absorb(ExtractVideos(payload, p.kind))
		tokens := ExtractContinuations(payload)
		if fresh == 0 && len(tokens) == 0 {
			// Stalled: one shot at the alternate surface, then abandon.
			payload, err = p.fetch(ctx, token, true)
			if err != nil {
				continue
			}
			if p.observe != nil {
				p.observe(payload)
			}
			absorb(ExtractVideos(payload, p.kind))
			tokens = ExtractContinuations(payload)
		}
		enqueue(tokens)
	}
	return items
}
