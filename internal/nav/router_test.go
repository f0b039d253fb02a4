package nav_test

import (
	"testing"

	"github.com/nikbrunner/mev/internal/nav"
	"github.com/nikbrunner/mev/internal/query"
	"gotest.tools/v3/assert"
)

func TestRouter_ReplaceKeepsHistoryLength(t *testing.T) {
	r := nav.NewRouter(query.ForKeyword("pizza"))
	v := r.Version()

	r.Replace(query.Parse("keyword=pizza&flavor=1"))

	assert.Equal(t, r.Len(), 1)
	assert.Equal(t, r.Current().Encode(), "flavor=1&keyword=pizza")
	assert.Check(t, r.Version() != v)
	assert.Check(t, !r.CanBack())
}

func TestRouter_PushBackForward(t *testing.T) {
	r := nav.NewRouter(query.ForKeyword("pizza"))
	r.Push(query.ForKeyword("ramen"))
	r.Push(query.ForKeyword("sushi"))
	assert.Equal(t, r.Len(), 3)

	assert.Check(t, r.Back())
	assert.Equal(t, r.Current().Keyword(), "ramen")
	assert.Check(t, r.Back())
	assert.Equal(t, r.Current().Keyword(), "pizza")
	assert.Check(t, !r.Back())

	assert.Check(t, r.Forward())
	assert.Equal(t, r.Current().Keyword(), "ramen")

	// pushing from the middle drops forward entries
	r.Push(query.ForKeyword("udon"))
	assert.Equal(t, r.Len(), 3)
	assert.Check(t, !r.Forward())
	assert.Equal(t, r.Current().Keyword(), "udon")
}

func TestRouter_CurrentIsACopy(t *testing.T) {
	r := nav.NewRouter(query.ForKeyword("pizza"))
	q := r.Current()
	q.Toggle("flavor", "1")

	assert.Equal(t, r.Current().Len(), 1)
}
