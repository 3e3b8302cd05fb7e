package schema

import "strings"

// defaultMaxPathLen bounds the rendered diagnostic path. Rendering
// truncates whole segments from the oldest end, never mid-segment.
const defaultMaxPathLen = 4078

// pathSegment is one element of the diagnostic path.
type pathSegment struct {
	text    string // rendered segment without the leading '/'
	keyword string // non-empty for compound segments of the form {keyword}
	named   bool   // compound segment has received its concrete name
}

// pathTracker maintains the human-readable location string used by
// diagnostics. Segments are pushed as compilation descends the schema
// tree and removed as it ascends.
type pathTracker struct {
	segments []pathSegment
	maxLen   int
}

func newPathTracker() pathTracker {
	return pathTracker{maxLen: defaultMaxPathLen}
}

// update pushes or removes one path segment.
//
// An empty name removes the most recently pushed segment. A name of the
// form "{keyword}" pushes a compound placeholder; a following update with
// a concrete name rewrites it to "{keyword='name'}". Removing a compound
// segment therefore takes two calls with an empty name: the first reverts
// the segment to its placeholder form, the second removes it.
//
// A non-empty prefix qualifies the segment as "prefix:name"; it is used
// when the segment's node belongs to a module other than the one being
// compiled.
func (p *pathTracker) update(prefix, name string) {
	switch {
	case name == "":
		n := len(p.segments)
		if n == 0 {
			return
		}
		last := &p.segments[n-1]
		if last.keyword != "" && last.named {
			last.text = "{" + last.keyword + "}"
			last.named = false
			return
		}
		p.segments = p.segments[:n-1]

	case strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}"):
		p.segments = append(p.segments, pathSegment{
			text:    name,
			keyword: name[1 : len(name)-1],
		})

	default:
		if n := len(p.segments); n > 0 {
			last := &p.segments[n-1]
			if last.keyword != "" && !last.named {
				last.text = "{" + last.keyword + "='" + name + "'}"
				last.named = true
				return
			}
		}
		text := name
		if prefix != "" {
			text = prefix + ":" + name
		}
		p.segments = append(p.segments, pathSegment{text: text})
	}
}

// render returns the current path. When the full rendering would exceed
// maxLen, the oldest segments are dropped whole and the result is
// prefixed with "..".
func (p *pathTracker) render() string {
	if len(p.segments) == 0 {
		return "/"
	}

	total := 0
	for _, seg := range p.segments {
		total += 1 + len(seg.text) // '/' + text
	}
	start := 0
	if total > p.maxLen {
		limit := p.maxLen - 2 // room for the ".." marker
		kept := 0
		for i := len(p.segments) - 1; i >= 0; i-- {
			need := 1 + len(p.segments[i].text)
			if kept+need > limit {
				start = i + 1
				break
			}
			kept += need
		}
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("..")
	}
	for _, seg := range p.segments[start:] {
		b.WriteByte('/')
		b.WriteString(seg.text)
	}
	return b.String()
}

// depth returns the number of segments currently pushed.
func (p *pathTracker) depth() int {
	return len(p.segments)
}
