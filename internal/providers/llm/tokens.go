package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/campinnova/internal/core"
)

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
	tkErr  error
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// CountTokens estimates the prompt size of turns. When the encoder cannot be
// loaded it falls back to a four-bytes-per-token heuristic; ok reports which path ran.
func CountTokens(turns []core.Turn) (n int, ok bool) {
	enc, err := getTokenizer()
	for _, t := range turns {
		if err != nil {
			n += (len(t.Content) + 3) / 4
			continue
		}
		n += len(enc.Encode(t.Content, nil, nil))
	}
	return n, err == nil
}
