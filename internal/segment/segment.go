// Package segment splits text into script/direction-coherent TextRuns,
// grounded directly on go-text/typesetting's shaping.Segmenter (bidi-run
// splitting via golang.org/x/text/unicode/bidi) and extended with hard
// line-break detection, merging of Common/Inherited runes into the
// preceding script run, and font-coverage splitting per spec.md §4.3 (C4).
// Grapheme cluster boundaries are not computed; scripts are assigned and
// merged per rune.
package segment

import (
	"unicode"

	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"

	"github.com/fontlaborg/o4e"
)

// CoverageChecker supplies the ordered candidate fonts for a script and
// reports per-rune coverage for each; it is the hook through which the segmenter consults
// C2's fallback chain without importing fontdb directly (fontdb in turn
// depends on this package's parent, the o4e facade, avoiding a cycle).
type CoverageChecker interface {
	// FallbackFonts returns the ordered fallback chain for script.
	FallbackFonts(script string) []o4e.Font
	// Covers reports whether font covers r.
	Covers(font o4e.Font, r rune) bool
}

// Options controls segmentation behavior.
type Options struct {
	DefaultDirection o4e.Direction
	// Resolver, if non-nil, is consulted for every run lacking a bound
	// Font, per spec.md §4.3 step 6. When nil, runs are left unbound and
	// the caller (the backend facade) resolves them.
	Resolver CoverageChecker
}

// Segment splits text into an ordered list of TextRuns satisfying the
// invariants of spec.md §4.3: slices concatenate back to the input,
// runs do not overlap, every code point is covered by exactly one run, and
// direction is constant within a run.
func Segment(text string, opts Options) []o4e.TextRun {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	byteOffsets := runeByteOffsets(text, runes)

	bidiRuns := splitByBidi(text, opts.DefaultDirection)
	scriptRuns := splitByScript(runes, bidiRuns)
	hardRuns := splitByHardBreak(runes, scriptRuns)

	out := make([]o4e.TextRun, 0, len(hardRuns))
	for _, r := range hardRuns {
		run := o4e.TextRun{
			Start:     byteOffsets[r.start],
			End:       byteOffsets[r.end],
			Script:    r.script,
			Direction: r.direction,
			HardBreak: r.hardBreak,
		}
		if opts.Resolver != nil {
			out = append(out, resolveFont(run, text, runes, byteOffsets, opts.Resolver)...)
		} else {
			out = append(out, run)
		}
	}
	return out
}

// runeByteOffsets returns, for each rune index i (and one past the last),
// the byte offset in text where that rune starts (or text ends).
func runeByteOffsets(text string, runes []rune) []int {
	offsets := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		offsets[i] = b
		b += utf8RuneLen(r)
	}
	offsets[len(runes)] = len(text)
	return offsets
}

func utf8RuneLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

type bidiRun struct {
	start, end int
	direction  o4e.Direction
}

// splitByBidi resolves paragraph embedding levels with golang.org/x/text's
// bidi algorithm, the same primitive go-text/typesetting's
// shaping.Segmenter.splitByBidi wraps, and splits text at every embedding
// level change so each returned run is single-direction.
func splitByBidi(text string, defaultDir o4e.Direction) []bidiRun {
	def := bidi.LeftToRight
	if defaultDir == o4e.DirRTL {
		def = bidi.RightToLeft
	}
	var p bidi.Paragraph
	p.SetString(text, bidi.DefaultDirection(def))
	ordering, err := p.Order()
	if err != nil {
		runes := []rune(text)
		return []bidiRun{{start: 0, end: len(runes), direction: defaultDir}}
	}

	runes := []rune(text)
	runs := make([]bidiRun, 0, ordering.NumRuns())
	start := 0
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		dir := o4e.DirLTR
		if run.Direction() == bidi.RightToLeft {
			dir = o4e.DirRTL
		}
		_, endByte := run.Pos()
		end := byteToRuneIndex(text, runes, endByte+1)
		runs = append(runs, bidiRun{start: start, end: end, direction: dir})
		start = end
	}
	if start < len(runes) {
		runs = append(runs, bidiRun{start: start, end: len(runes), direction: defaultDir})
	}
	return runs
}

func byteToRuneIndex(text string, runes []rune, byteOff int) int {
	b := 0
	for i, r := range runes {
		if b >= byteOff {
			return i
		}
		b += utf8RuneLen(r)
	}
	return len(runes)
}

type scriptRun struct {
	start, end int
	direction  o4e.Direction
	script     string
}

// splitByScript assigns an ISO 15924 script to each rune via
// language.LookupScript (the same lookup gogpu-gg's shaper uses for
// per-rune script detection) and merges neighboring runes that share a
// script, or whose script is Common/Inherited, into the preceding run.
func splitByScript(runes []rune, bidiRuns []bidiRun) []scriptRun {
	var out []scriptRun
	for _, br := range bidiRuns {
		var cur *scriptRun
		for i := br.start; i < br.end; i++ {
			s := scriptFor(runes[i])
			if cur != nil && (s == cur.script || isCommonOrInherited(runes[i])) {
				cur.end = i + 1
				continue
			}
			out = append(out, scriptRun{start: i, end: i + 1, direction: br.direction, script: s})
			cur = &out[len(out)-1]
		}
	}
	return out
}

func scriptFor(r rune) string {
	s := language.LookupScript(r)
	if s == 0 {
		return "Zyyy" // Common
	}
	return s.String()
}

func isCommonOrInherited(r rune) bool {
	return unicode.Is(unicode.Common, r) || unicode.Is(unicode.Inherited, r)
}

type hardRun struct {
	start, end int
	direction  o4e.Direction
	script     string
	hardBreak  bool
}

// splitByHardBreak terminates a run at LF, CRLF, U+2028 (line separator),
// and U+2029 (paragraph separator), per spec.md §4.3 step 2. The
// terminator itself becomes its own run so its direction/script never
// contaminates neighboring text.
func splitByHardBreak(runes []rune, in []scriptRun) []hardRun {
	var out []hardRun
	for _, sr := range in {
		start := sr.start
		for i := sr.start; i < sr.end; i++ {
			n := hardBreakLen(runes, i, sr.end)
			if n == 0 {
				continue
			}
			if i > start {
				out = append(out, hardRun{start: start, end: i, direction: sr.direction, script: sr.script})
			}
			out = append(out, hardRun{start: i, end: i + n, direction: sr.direction, script: sr.script, hardBreak: true})
			i += n - 1
			start = i + 1
		}
		if start < sr.end {
			out = append(out, hardRun{start: start, end: sr.end, direction: sr.direction, script: sr.script})
		}
	}
	return out
}

// hardBreakLen returns the rune-length of a hard break terminator starting
// at i, or 0 if none starts there.
func hardBreakLen(runes []rune, i, end int) int {
	switch runes[i] {
	case '\r':
		if i+1 < end && runes[i+1] == '\n' {
			return 2
		}
		return 1
	case '\n', ' ', ' ':
		return 1
	default:
		return 0
	}
}

// resolveFont implements spec.md §4.3 step 6: consult the fallback chain
// in order, splitting the run at the first uncovered code point when no
// single face covers it all.
func resolveFont(run o4e.TextRun, text string, runes []rune, byteOffsets []int, resolver CoverageChecker) []o4e.TextRun {
	startRune := byteToRuneIndex(text, runes, run.Start)
	endRune := byteToRuneIndex(text, runes, run.End)
	candidates := resolver.FallbackFonts(run.Script)
	if len(candidates) == 0 {
		return []o4e.TextRun{run}
	}

	for _, font := range candidates {
		all := true
		for i := startRune; i < endRune && all; i++ {
			all = resolver.Covers(font, runes[i])
		}
		if all {
			f := font
			run.Font = &f
			return []o4e.TextRun{run}
		}
	}

	var out []o4e.TextRun
	segStart := startRune
	for _, font := range candidates {
		if segStart >= endRune {
			break
		}
		covered := segStart
		for covered < endRune && resolver.Covers(font, runes[covered]) {
			covered++
		}
		if covered > segStart {
			f := font
			out = append(out, o4e.TextRun{
				Start: byteOffsets[segStart], End: byteOffsets[covered],
				Script: run.Script, Direction: run.Direction, HardBreak: run.HardBreak && covered == endRune,
				Font: &f,
			})
			segStart = covered
		}
	}
	if segStart < endRune {
		// No candidate covers the remainder; emit it unbound so the caller
		// can surface FontNotFound rather than silently dropping text.
		out = append(out, o4e.TextRun{
			Start: byteOffsets[segStart], End: byteOffsets[endRune],
			Script: run.Script, Direction: run.Direction, HardBreak: run.HardBreak,
		})
	}
	return out
}
