package resource

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotera/internal/graphql"
	"gotera/internal/notify"
)

func TestQuery_FetchReplacesData(t *testing.T) {
	calls := 0
	q := NewQuery(func(context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return []string{"a", "b"}, nil
		}
		return []string{"c"}, nil
	})

	assert.Nil(t, q.State().Data)

	st := q.Fetch(context.Background())
	require.NotNil(t, st.Data)
	assert.Equal(t, []string{"a", "b"}, *st.Data)
	assert.False(t, st.Loading)

	st = q.Fetch(context.Background())
	assert.Equal(t, []string{"c"}, *st.Data)
}

func TestQuery_ErrorKeepsPreviousData(t *testing.T) {
	fail := false
	q := NewQuery(func(context.Context) (int, error) {
		if fail {
			return 0, errors.New("boom")
		}
		return 7, nil
	})

	q.Fetch(context.Background())
	fail = true
	st := q.Fetch(context.Background())

	require.Error(t, st.Err)
	require.NotNil(t, st.Data)
	assert.Equal(t, 7, *st.Data)

	fail = false
	st = q.Fetch(context.Background())
	assert.NoError(t, st.Err)
}

func TestQuery_SkipSendsNothing(t *testing.T) {
	var calls atomic.Int32
	familyID := ""
	q := NewQuery(func(context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	}, Skip(func() bool { return familyID == "" }))

	st := q.Fetch(context.Background())
	assert.Nil(t, st.Data)
	assert.Zero(t, calls.Load())
	assert.True(t, q.Skipped())

	familyID = "f1"
	q.Fetch(context.Background())
	assert.EqualValues(t, 1, calls.Load())
}

func TestQuery_StaleResponseDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var calls atomic.Int32

	q := NewQuery(func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(firstStarted)
			<-releaseFirst
			return "old", nil
		}
		return "new", nil
	})

	done := make(chan State[string])
	go func() { done <- q.Fetch(context.Background()) }()
	<-firstStarted

	st := q.Fetch(context.Background())
	require.NotNil(t, st.Data)
	assert.Equal(t, "new", *st.Data)

	close(releaseFirst)
	<-done

	final := q.State()
	assert.Equal(t, "new", *final.Data)
	assert.False(t, final.Loading)
}

func TestMutation_SuccessNotifiesAndRefetches(t *testing.T) {
	rec := &notify.Recorder{}
	refetched := 0
	list := NewQuery(func(context.Context) (int, error) {
		refetched++
		return refetched, nil
	})

	m := NewMutation(func(_ context.Context, name string) (string, error) {
		return "id-" + name, nil
	}, WithNotifier(rec), WithSuccessMessage("Profession created"), WithRefetch(list))

	out, err := m.Run(context.Background(), "nurse")
	require.NoError(t, err)
	assert.Equal(t, "id-nurse", out)
	assert.Equal(t, []notify.Notice{notify.Success("Profession created")}, rec.Notices())
	assert.Equal(t, 1, refetched)
	assert.False(t, m.Loading())
}

func TestMutation_ServerErrorShowsFirstMessage(t *testing.T) {
	rec := &notify.Recorder{}
	refetched := false
	list := NewQuery(func(context.Context) (int, error) {
		refetched = true
		return 0, nil
	})

	m := NewMutation(func(context.Context, string) (string, error) {
		return "", &graphql.ServerError{
			Operation: "CreateMember",
			Errors:    []graphql.ErrorMessage{{Message: "Phone already registered"}, {Message: "second"}},
		}
	}, WithNotifier(rec), WithSuccessMessage("Member created"), WithRefetch(list))

	_, err := m.Run(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, []notify.Notice{notify.Error("Phone already registered")}, rec.Notices())
	assert.False(t, refetched)
}

func TestMutation_NoSuccessMessage(t *testing.T) {
	rec := &notify.Recorder{}
	m := NewMutation(func(context.Context, int) (int, error) { return 1, nil }, WithNotifier(rec))

	_, err := m.Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, rec.Notices())
}

func TestMutation_SilentErrors(t *testing.T) {
	rec := &notify.Recorder{}
	errInline := errors.New("inline")
	m := NewMutation(func(context.Context, int) (int, error) { return 0, errInline },
		WithNotifier(rec),
		WithSilentErrors(func(err error) bool { return errors.Is(err, errInline) }))

	_, err := m.Run(context.Background(), 0)
	assert.ErrorIs(t, err, errInline)
	assert.Empty(t, rec.Notices())
}
