package console

import (
	"fmt"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueCommand(name string) *Command {
	return &Command{name: name, handler: func(*ArgStack) error { return nil }}
}

func TestCommandQueue_FIFO(t *testing.T) {
	q := NewCommandQueue(0)
	for _, name := range []string{"a", "b", "c"} {
		_, err := q.Enqueue(queueCommand(name), NewArgStack(), name)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, q.Len())

	var order []string
	n := q.Drain(func(e Entry) {
		order = append(order, e.Command.Name())
	})

	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Drain(func(Entry) { t.Fatal("nothing should be drained") }))
}

func TestCommandQueue_EntriesHaveIdentity(t *testing.T) {
	q := NewCommandQueue(0)
	first, err := q.Enqueue(queueCommand("x"), NewArgStack(), "x")
	require.NoError(t, err)
	second, err := q.Enqueue(queueCommand("x"), NewArgStack(), "x")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Enqueued.IsZero())
	assert.Equal(t, "x", first.Line)
}

func TestCommandQueue_Bounded(t *testing.T) {
	q := NewCommandQueue(2)
	assert.Equal(t, 2, q.Capacity())

	_, err := q.Enqueue(queueCommand("a"), NewArgStack(), "a")
	require.NoError(t, err)
	_, err = q.Enqueue(queueCommand("b"), NewArgStack(), "b")
	require.NoError(t, err)
	_, err = q.Enqueue(queueCommand("c"), NewArgStack(), "c")
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 2, q.Len())

	q.Drain(func(Entry) {})
	_, err = q.Enqueue(queueCommand("c"), NewArgStack(), "c")
	assert.NoError(t, err)
}

func TestCommandQueue_EnqueueDuringDrainRunsNextTime(t *testing.T) {
	q := NewCommandQueue(0)
	_, err := q.Enqueue(queueCommand("first"), NewArgStack(), "first")
	require.NoError(t, err)

	var seen []string
	q.Drain(func(e Entry) {
		seen = append(seen, e.Line)
		_, err := q.Enqueue(queueCommand("second"), NewArgStack(), "second")
		require.NoError(t, err)
	})
	assert.Equal(t, []string{"first"}, seen)
	assert.Equal(t, 1, q.Len())

	q.Drain(func(e Entry) { seen = append(seen, e.Line) })
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestCommandQueue_ConcurrentProducersKeepTheirOrder(t *testing.T) {
	const producers = 8
	const perProducer = 500

	q := NewCommandQueue(0)
	cmd := queueCommand("p")

	var wg conc.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Go(func() {
			for i := 0; i < perProducer; i++ {
				_, err := q.Enqueue(cmd, NewArgStack(IntValue(int64(p)), IntValue(int64(i))), fmt.Sprintf("%d:%d", p, i))
				assert.NoError(t, err)
			}
		})
	}

	// Drain concurrently with the producers to exercise the swap.
	next := make([]int64, producers)
	total := 0
	visit := func(e Entry) {
		p, i := e.Args.Int(0), e.Args.Int(1)
		assert.Equal(t, next[p], i, "producer %d out of order", p)
		next[p] = i + 1
		total++
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
			q.Drain(visit)
		}
	}
	q.Drain(visit)

	assert.Equal(t, producers*perProducer, total)
	for p := range next {
		assert.Equal(t, int64(perProducer), next[p])
	}
}
