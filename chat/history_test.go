package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csv610/dialectica/chat"
)

func TestHistoryAppendPreservesOrder(t *testing.T) {
	t.Parallel()

	h := chat.NewHistory()
	a := chat.Entry{ID: "a", Question: "first"}
	b := chat.Entry{ID: "b", Question: "second"}

	h.Append(a)
	h.Append(b)

	all := h.All()
	assert.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, 2, h.Len())
}

func TestHistoryClearDiscardsEverything(t *testing.T) {
	t.Parallel()

	h := chat.NewHistory()
	h.Append(chat.Entry{ID: "a"})
	h.Append(chat.Entry{ID: "b"})

	h.Clear()
	assert.Empty(t, h.All())
	assert.Equal(t, 0, h.Len())

	h.Append(chat.Entry{ID: "c"})
	assert.Equal(t, 1, h.Len())
}

func TestHistoryAllReturnsCopy(t *testing.T) {
	t.Parallel()

	h := chat.NewHistory()
	h.Append(chat.Entry{ID: "a", Question: "original"})

	all := h.All()
	all[0].Question = "mutated"

	assert.Equal(t, "original", h.All()[0].Question)
}

func TestEntryWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, chat.Entry{}.Words())
	assert.Equal(t, 4, chat.Entry{Answer: "to be or not"}.Words())
}
