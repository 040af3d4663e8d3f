package ll1

import (
	"github.com/cache-nez/scallion"
	"github.com/cache-nez/scallion/produce"
)

// Completion: extend the input a syntax has already consumed to a full,
// accepted input, by sampling concrete tokens for the kinds of every
// accepted trail.

// Completions enumerates parse results reachable from the syntax by feeding
// it accepted token sequences, shortest trails first. The samples function
// supplies the concrete tokens to try for each kind; kinds it returns no
// sample for are not explored. Every sample combination of every trail is
// fed to the parse loop, and the producer yields the resulting Results,
// each carrying its residual syntax.
func (s *Syntax) Completions(samples func(scallion.Kind) []scallion.Token) *produce.Producer {
	trails := s.Filter(func(k scallion.Kind) bool {
		return len(samples(k)) > 0
	}).Trails()
	var queue [][]scallion.Token
	return produce.FromFunc(func() (interface{}, bool) {
		for len(queue) == 0 {
			next, ok := trails.Next()
			if !ok {
				return nil, false
			}
			queue = expandTrail(next.(scallion.Trail), samples)
		}
		sequence := queue[0]
		queue = queue[1:]
		return s.ApplyTokens(sequence...), true
	})
}

// expandTrail interprets a trail as all concrete token sequences: the
// Cartesian product of the samples of its kinds.
func expandTrail(trail scallion.Trail, samples func(scallion.Kind) []scallion.Token) [][]scallion.Token {
	sequences := [][]scallion.Token{{}}
	for _, k := range trail {
		toks := samples(k)
		grown := make([][]scallion.Token, 0, len(sequences)*len(toks))
		for _, seq := range sequences {
			for _, tok := range toks {
				extended := make([]scallion.Token, len(seq), len(seq)+1)
				copy(extended, seq)
				grown = append(grown, append(extended, tok))
			}
		}
		sequences = grown
	}
	return sequences
}

// Complete feeds the syntax its shortest sampled completion and returns the
// residual. The sample function maps a kind to the one token to use for it;
// kinds without a sample are not explored. If no completion exists under
// the sampling, Complete returns the failing syntax.
func (s *Syntax) Complete(sample func(scallion.Kind) (scallion.Token, bool)) *Syntax {
	restricted := s.Filter(func(k scallion.Kind) bool {
		_, ok := sample(k)
		return ok
	})
	next, ok := restricted.Trails().Next()
	if !ok {
		return Fail()
	}
	trail := next.(scallion.Trail)
	tokens := make([]scallion.Token, len(trail))
	for i, k := range trail {
		tokens[i], _ = sample(k)
	}
	return s.ApplyTokens(tokens...).Residual()
}
