package o4e

import (
	"hash/maphash"
	"sort"
	"strconv"
	"strings"
)

var keySeed = maphash.MakeSeed()

func hashBytes(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	var h maphash.Hash
	h.SetSeed(keySeed)
	h.Write(b)
	return h.Sum64()
}

// canonicalMap renders a tag->value map as a sorted, order-independent
// string so it can be embedded in a comparable cache key struct.
func canonicalMap[V any](m map[string]V, render func(V) string) string {
	tags := make([]string, 0, len(m))
	for t := range m {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	var sb strings.Builder
	for _, t := range tags {
		sb.WriteString(t)
		sb.WriteByte('=')
		sb.WriteString(render(m[t]))
		sb.WriteByte(';')
	}
	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
