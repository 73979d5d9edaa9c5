package similarity

import "sort"

// popularMinLen is the candidate length at which very frequent runes stop
// anchoring matches. Long page excerpts are dominated by spaces and common
// letters, which would otherwise make every block search quadratic.
const popularMinLen = 200

// sequenceMatcher finds matching blocks between a and b in the manner of the
// classic Ratcliff/Obershelp "gestalt" matcher: take the longest common block,
// then recurse on both sides of it.
type sequenceMatcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newSequenceMatcher(a, b []rune) *sequenceMatcher {
	m := &sequenceMatcher{a: a, b: b}
	m.indexB()
	return m
}

func (m *sequenceMatcher) indexB() {
	m.b2j = make(map[rune][]int)
	for j, r := range m.b {
		m.b2j[r] = append(m.b2j[r], j)
	}

	n := len(m.b)
	if n < popularMinLen {
		return
	}
	limit := n/100 + 1
	for r, idxs := range m.b2j {
		if len(idxs) > limit {
			delete(m.b2j, r)
		}
	}
}

type match struct {
	i, j, size int
}

// longestMatch returns the longest block a[i:i+size] == b[j:j+size] inside
// a[alo:ahi] and b[blo:bhi]. Among equal lengths the earliest i, then the
// earliest j, wins. Popular runes cannot start a block but may extend one.
func (m *sequenceMatcher) longestMatch(alo, ahi, blo, bhi int) match {
	besti, bestj, bestSize := alo, blo, 0
	j2len := map[int]int{}

	for i := alo; i < ahi; i++ {
		newJ2len := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}

	for besti > alo && bestj > blo && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestSize = besti-1, bestj-1, bestSize+1
	}
	for besti+bestSize < ahi && bestj+bestSize < bhi && m.a[besti+bestSize] == m.b[bestj+bestSize] {
		bestSize++
	}

	return match{i: besti, j: bestj, size: bestSize}
}

func (m *sequenceMatcher) matchingBlocks() []match {
	type span struct{ alo, ahi, blo, bhi int }

	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var blocks []match
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		x := m.longestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if x.size == 0 {
			continue
		}
		blocks = append(blocks, x)
		if s.alo < x.i && s.blo < x.j {
			queue = append(queue, span{s.alo, x.i, s.blo, x.j})
		}
		if x.i+x.size < s.ahi && x.j+x.size < s.bhi {
			queue = append(queue, span{x.i + x.size, s.ahi, x.j + x.size, s.bhi})
		}
	}

	sort.Slice(blocks, func(p, q int) bool {
		if blocks[p].i != blocks[q].i {
			return blocks[p].i < blocks[q].i
		}
		return blocks[p].j < blocks[q].j
	})
	return blocks
}

// SequenceRatio returns 2*M/T where M is the number of runes in matching
// blocks and T the combined length. Two empty sequences score 1.0.
func SequenceRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	matches := 0
	for _, blk := range newSequenceMatcher(a, b).matchingBlocks() {
		matches += blk.size
	}
	return 2.0 * float64(matches) / float64(total)
}
