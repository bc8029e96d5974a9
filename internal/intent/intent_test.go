package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMutation(t *testing.T) {
	mutations := []string{
		"delete the groceries task",
		"please REMOVE that one",
		"mark the first one as done",
		"add a task to call mom",
		"ye task hata do",
		"homework complete hogaya",
		"update the title",
	}
	for _, msg := range mutations {
		assert.True(t, IsMutation(msg), "expected mutation: %q", msg)
	}

	nonMutations := []string{
		"what can you help me with?",
		"show my tasks",
		"hello",
	}
	for _, msg := range nonMutations {
		assert.False(t, IsMutation(msg), "expected non-mutation: %q", msg)
	}
}

func TestIsBulk(t *testing.T) {
	bulk := []string{
		"delete all my tasks",
		"sab delete kar do",
		"clear my list",
		"mark all done please",
		"sab khatam karo",
	}
	for _, msg := range bulk {
		assert.True(t, IsBulk(msg), "expected bulk: %q", msg)
	}

	assert.False(t, IsBulk("delete the groceries task"))
	assert.False(t, IsBulk("complete the first one"))
}

func TestIsTitleSpecific(t *testing.T) {
	assert.True(t, IsTitleSpecific("delete the task called groceries"))
	assert.True(t, IsTitleSpecific("remove the one named homework"))
	assert.True(t, IsTitleSpecific("the task with title report"))
	assert.False(t, IsTitleSpecific("delete the groceries task"))
}

func TestExtractReferenceText(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"delete the task called groceries", "groceries"},
		// Trailing "task" consumes the remainder; the caller falls back to
		// fuzzy matching over the whole message for this phrasing.
		{"delete the groceries task", ""},
		{"complete the task named homework", "homework"},
		{"ye task hata do", ""},
		{"update the task titled report with a better name", "report with a better name"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ExtractReferenceText(c.message), "message: %q", c.message)
	}
}

func TestClassifyFailure(t *testing.T) {
	assert.Equal(t, FailureDelete, ClassifyFailure("delete the thing"))
	assert.Equal(t, FailureDelete, ClassifyFailure("ye hata do"))
	assert.Equal(t, FailureComplete, ClassifyFailure("mark it done"))
	assert.Equal(t, FailureUpdate, ClassifyFailure("change the title"))
	assert.Equal(t, FailureAdd, ClassifyFailure("add something"))
	assert.Equal(t, FailureGeneric, ClassifyFailure("hmm"))
}
