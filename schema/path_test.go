package schema

import (
	"strings"
	"testing"

	"github.com/golangyang/yangc/internal/testutil"
)

func TestPathTrackerPushPop(t *testing.T) {
	p := newPathTracker()
	testutil.Equal(t, "/", p.render())

	p.update("", "interfaces")
	testutil.Equal(t, "/interfaces", p.render())

	p.update("", "interface")
	testutil.Equal(t, "/interfaces/interface", p.render())
	testutil.Equal(t, 2, p.depth())

	p.update("", "")
	testutil.Equal(t, "/interfaces", p.render())

	p.update("", "")
	testutil.Equal(t, "/", p.render())
	testutil.Equal(t, 0, p.depth())

	// underflow is a no-op
	p.update("", "")
	testutil.Equal(t, "/", p.render())
}

func TestPathTrackerPrefix(t *testing.T) {
	p := newPathTracker()
	p.update("base", "system")
	testutil.Equal(t, "/base:system", p.render())
	p.update("", "hostname")
	testutil.Equal(t, "/base:system/hostname", p.render())
}

func TestPathTrackerCompoundSegment(t *testing.T) {
	p := newPathTracker()
	p.update("", "{uses}")
	testutil.Equal(t, "/{uses}", p.render())

	// the next concrete push completes the placeholder
	p.update("", "endpoint")
	testutil.Equal(t, "/{uses='endpoint'}", p.render())
	testutil.Equal(t, 1, p.depth())

	// a concrete push after completion is an ordinary segment
	p.update("", "address")
	testutil.Equal(t, "/{uses='endpoint'}/address", p.render())
	p.update("", "")

	// removing a completed compound segment takes two calls: the first
	// reverts it to the placeholder, the second removes it
	p.update("", "")
	testutil.Equal(t, "/{uses}", p.render())
	p.update("", "")
	testutil.Equal(t, "/", p.render())
}

func TestPathTrackerNestedCompound(t *testing.T) {
	p := newPathTracker()
	p.update("", "{typedef}")
	p.update("", "percent")
	p.update("", "{extension}")
	p.update("", "meta:annotation")
	testutil.Equal(t, "/{typedef='percent'}/{extension='meta:annotation'}", p.render())

	p.update("", "")
	p.update("", "")
	testutil.Equal(t, "/{typedef='percent'}", p.render())
	p.update("", "")
	p.update("", "")
	testutil.Equal(t, "/", p.render())
}

func TestPathTrackerTruncation(t *testing.T) {
	p := newPathTracker()
	p.maxLen = 40

	long := strings.Repeat("x", 18)
	p.update("", long)
	p.update("", long)
	p.update("", "leaf")

	got := p.render()
	testutil.True(t, strings.HasPrefix(got, ".."), "truncated path starts with '..': %q", got)
	testutil.True(t, len(got) <= 40, "render respects maxLen, got %d", len(got))
	// segments are dropped whole from the oldest end
	testutil.Contains(t, got, "/"+long)
	testutil.Contains(t, got, "/leaf")

	// popping back under the limit restores a full path
	p.update("", "")
	p.update("", "")
	testutil.Equal(t, "/"+long, p.render())
}

func TestPathTrackerDeepNesting(t *testing.T) {
	p := newPathTracker()
	for range 100 {
		p.update("", "level")
	}
	testutil.Equal(t, 100, p.depth())
	for range 100 {
		p.update("", "")
	}
	testutil.Equal(t, "/", p.render())
}
