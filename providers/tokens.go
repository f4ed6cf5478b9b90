package providers

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// CountTokens estimates how many tokens text holds, for backends that do
// not report usage. It uses the cl100k_base encoding when it can be loaded
// and falls back to a chars/4 heuristic otherwise.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	encodingOnce.Do(func() {
		if enc, err := tiktoken.GetEncoding("cl100k_base"); err == nil {
			encoding = enc
		}
	})
	if encoding == nil {
		return (len(text) + 3) / 4
	}
	return len(encoding.Encode(text, nil, nil))
}
