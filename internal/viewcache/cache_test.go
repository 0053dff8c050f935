package viewcache

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    string `json:"id"`
	Stage string `json:"stage"`
}

func restage(id, stage string) func(Key, []byte) ([]byte, bool, error) {
	return func(_ Key, raw []byte) ([]byte, bool, error) {
		var rows []row
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, false, err
		}
		found := false
		for i := range rows {
			if rows[i].ID == id {
				rows[i].Stage = stage
				found = true
			}
		}
		if !found {
			return nil, false, nil
		}
		out, err := json.Marshal(rows)
		return out, true, err
	}
}

func TestListKeyIsCanonical(t *testing.T) {
	type filter struct {
		Stage string `json:"stage,omitempty"`
		Page  int    `json:"page"`
	}
	assert.Equal(t, ListKey("candidates", filter{Stage: "applied", Page: 1}), ListKey("candidates", filter{Stage: "applied", Page: 1}))
	assert.NotEqual(t, ListKey("candidates", filter{Stage: "applied", Page: 1}), ListKey("candidates", filter{Stage: "applied", Page: 2}))
	assert.NotEqual(t, ListKey("candidates", filter{}), ListKey("jobs", filter{}))
}

func TestGetRespectsStaleAndTTL(t *testing.T) {
	c := New(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	key := DetailKey("candidates", "c1")
	require.NoError(t, c.Set(key, row{ID: "c1", Stage: "applied"}))

	var got row
	assert.True(t, c.Get(key, &got))
	assert.Equal(t, "applied", got.Stage)

	now = now.Add(2 * time.Minute)
	assert.False(t, c.Get(key, &got), "expired")

	now = now.Add(-2 * time.Minute)
	c.Invalidate(key)
	assert.False(t, c.Get(key, &got), "stale")

	assert.Equal(t, 1, c.CleanExpired())
	assert.Equal(t, 0, c.Len())
}

func TestMutateRollsBackByteForByte(t *testing.T) {
	c := New(time.Minute)

	applied := ListKey("candidates", map[string]string{"stage": "applied"})
	all := ListKey("candidates", map[string]string{})
	other := ListKey("candidates", map[string]string{"stage": "offer"})
	missing := ListKey("candidates", map[string]string{"stage": "hired"})

	require.NoError(t, c.Set(applied, []row{{ID: "c1", Stage: "applied"}, {ID: "c2", Stage: "applied"}}))
	require.NoError(t, c.Set(all, []row{{ID: "c1", Stage: "applied"}, {ID: "c3", Stage: "offer"}}))
	require.NoError(t, c.Set(other, []row{{ID: "c3", Stage: "offer"}}))

	before := map[Key][]byte{}
	for _, k := range []Key{applied, all, other} {
		raw, ok := c.Raw(k)
		require.True(t, ok)
		before[k] = raw
	}

	var speculative []row
	commitErr := errors.New("network down")
	err := c.Mutate(Mutation{
		Keys:  []Key{applied, all, other, missing},
		Apply: restage("c1", "screening"),
		Commit: func() error {
			raw, _ := c.Raw(all)
			require.NoError(t, json.Unmarshal(raw, &speculative))
			return commitErr
		},
	})

	assert.ErrorIs(t, err, commitErr)
	assert.Equal(t, "screening", speculative[0].Stage, "speculative value visible during commit")

	for k, want := range before {
		got, ok := c.Raw(k)
		require.True(t, ok)
		assert.Equal(t, want, got, k.String())
	}
	_, ok := c.Raw(missing)
	assert.False(t, ok)

	var rows []row
	assert.True(t, c.Get(applied, &rows), "restored entries stay fresh")
}

func TestMutateInvalidatesOnSuccess(t *testing.T) {
	c := New(time.Minute)
	list := ListKey("candidates", map[string]string{})
	detail := DetailKey("candidates", "c1")
	require.NoError(t, c.Set(list, []row{{ID: "c1", Stage: "applied"}}))
	require.NoError(t, c.Set(detail, []row{{ID: "c1", Stage: "applied"}}))

	err := c.Mutate(Mutation{
		Keys:   []Key{list, detail},
		Apply:  restage("c1", "technical"),
		Commit: func() error { return nil },
	})
	require.NoError(t, err)

	var rows []row
	assert.False(t, c.Get(list, &rows))
	assert.False(t, c.Get(detail, &rows))

	raw, _ := c.Raw(list)
	assert.Contains(t, string(raw), "technical")
}
