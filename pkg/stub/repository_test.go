package stub

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(data string) map[string]string {
	return map[string]string{
		FieldData:        data,
		FieldRequestFrom: "127.0.0.1:50000",
	}
}

func TestRepositoryAdd(t *testing.T) {
	t.Parallel()

	r := NewRepository(false)
	s := &Stub{Responses: []ResponseConfig{{Is: &IsResponse{Data: "hi"}}}}
	r.Add(s)

	assert.NotEmpty(t, s.ID, "expected a generated UUID")
	assert.Equal(t, 1, r.Count())

	// Explicit IDs are preserved
	s2 := &Stub{ID: "my-stub"}
	r.Add(s2)
	assert.Equal(t, "my-stub", s2.ID)

	// nil is ignored
	r.Add(nil)
	assert.Equal(t, 2, r.Count())
}

func TestRepositoryFirstMatchWins(t *testing.T) {
	t.Parallel()

	r := NewRepository(false)
	r.Add(&Stub{
		ID:         "specific",
		Predicates: []Predicate{{Equals: map[string]string{"data": "ping"}}},
		Responses:  []ResponseConfig{{Is: &IsResponse{Data: "pong"}}},
	})
	r.Add(&Stub{
		ID:        "catchall",
		Responses: []ResponseConfig{{Is: &IsResponse{Data: "default"}}},
	})

	s, resp := r.Match(fields("ping"))
	require.NotNil(t, s)
	require.NotNil(t, resp)
	assert.Equal(t, "specific", s.ID)
	assert.Equal(t, "pong", resp.Is.Data)

	s, resp = r.Match(fields("anything else"))
	require.NotNil(t, s)
	require.NotNil(t, resp)
	assert.Equal(t, "catchall", s.ID)
}

func TestRepositoryRoundRobin(t *testing.T) {
	t.Parallel()

	r := NewRepository(false)
	r.Add(&Stub{
		Responses: []ResponseConfig{
			{Is: &IsResponse{Data: "first"}},
			{Is: &IsResponse{Data: "second"}},
			{Is: &IsResponse{Data: "third"}},
		},
	})

	want := []string{"first", "second", "third", "first", "second"}
	for i, expected := range want {
		_, resp := r.Match(fields("x"))
		require.NotNil(t, resp, "match %d", i)
		assert.Equal(t, expected, resp.Is.Data, "match %d", i)
	}
}

func TestRepositoryNoMatch(t *testing.T) {
	t.Parallel()

	r := NewRepository(false)
	r.Add(&Stub{
		Predicates: []Predicate{{Equals: map[string]string{"data": "ping"}}},
		Responses:  []ResponseConfig{{Is: &IsResponse{Data: "pong"}}},
	})

	s, resp := r.Match(fields("something else"))
	assert.Nil(t, s)
	assert.Nil(t, resp)
}

func TestRepositoryStubWithoutResponses(t *testing.T) {
	t.Parallel()

	r := NewRepository(false)
	r.Add(&Stub{ID: "empty"})

	s, resp := r.Match(fields("x"))
	require.NotNil(t, s)
	assert.Equal(t, "empty", s.ID)
	assert.Nil(t, resp)
}

func TestRepositoryDebugRecordsMatches(t *testing.T) {
	t.Parallel()

	r := NewRepository(true)
	r.Add(&Stub{ID: "s1", Responses: []ResponseConfig{{Is: &IsResponse{Data: "ok"}}}})

	r.Match(fields("one"))
	r.Match(fields("two"))

	recs := r.Matches("s1")
	require.Len(t, recs, 2)
	assert.Equal(t, "one", recs[0].Data)
	assert.Equal(t, "two", recs[1].Data)
	assert.Equal(t, "127.0.0.1:50000", recs[0].RequestFrom)
	assert.False(t, recs[0].Timestamp.IsZero())

	// Debug off records nothing
	r2 := NewRepository(false)
	r2.Add(&Stub{ID: "s2", Responses: []ResponseConfig{{Is: &IsResponse{Data: "ok"}}}})
	r2.Match(fields("x"))
	assert.Empty(t, r2.Matches("s2"))
}

func TestRepositoryClear(t *testing.T) {
	t.Parallel()

	r := NewRepository(true)
	r.Add(&Stub{ID: "s1", Responses: []ResponseConfig{{Is: &IsResponse{Data: "a"}}, {Is: &IsResponse{Data: "b"}}}})
	r.Match(fields("x"))

	r.Clear()
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.Matches("s1"))

	// Round-robin state resets too
	r.Add(&Stub{ID: "s1", Responses: []ResponseConfig{{Is: &IsResponse{Data: "a"}}, {Is: &IsResponse{Data: "b"}}}})
	_, resp := r.Match(fields("x"))
	require.NotNil(t, resp)
	assert.Equal(t, "a", resp.Is.Data)
}

func TestRepositoryAllReturnsCopy(t *testing.T) {
	t.Parallel()

	r := NewRepository(false)
	r.Add(&Stub{ID: "a"})
	r.Add(&Stub{ID: "b"})

	all := r.All()
	require.Len(t, all, 2)
	all[0] = nil
	assert.Equal(t, "a", r.All()[0].ID)
}

func TestRepositoryConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewRepository(false)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r.Add(&Stub{ID: fmt.Sprintf("stub-%d", n), Responses: []ResponseConfig{{Is: &IsResponse{Data: "ok"}}}})
			for j := 0; j < 50; j++ {
				r.Match(fields("x"))
				r.All()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, r.Count())
}
