package notify

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGate(t *testing.T) {
	var rec Recorder
	g := NewGate(&rec, false)

	g.Notify("hidden", "")
	g.SetAllowed(true)
	g.Notify("shown", "body")

	assert.Equal(t, []Message{{Title: "shown", Body: "body"}}, rec.Messages())
	assert.True(t, g.Allowed())
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Notify("Logro", "Primer Paso")
	w.Notify("Solo título", "")

	out := buf.String()
	assert.Contains(t, out, "Logro")
	assert.Contains(t, out, "Primer Paso")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestMulti(t *testing.T) {
	var a, b Recorder
	Multi{&a, NewLog(zap.NewNop()), &b, Discard}.Notify("t", "b")
	assert.Len(t, a.Messages(), 1)
	assert.Len(t, b.Messages(), 1)
}

func TestRecorder_ConcurrentDrain(t *testing.T) {
	var rec Recorder
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Notify("t", "")
		}()
	}
	wg.Wait()
	assert.Len(t, rec.Drain(), 50)
	assert.Empty(t, rec.Messages())
}
