package jsonlink

import (
	"github.com/viant/jsonlink/internal/lru"
)

// classPlan is the compiled lookup side of a ClassBinding: member
// name index, plus the tag wiring between VariantTagged members and
// their discriminator siblings.
type classPlan struct {
	byName map[string]int
	// tagOf maps a VariantTagged member index to its tag member index,
	// -1 elsewhere.
	tagOf []int
	// taggedBy maps a tag member index to the first VariantTagged
	// member referencing it, -1 elsewhere.
	taggedBy []int
}

var planCache = lru.New[*ClassBinding, *classPlan](2048)

func planFor(b *ClassBinding) *classPlan {
	if p, ok := planCache.Get(b); ok {
		return p
	}
	p := buildPlan(b)
	planCache.Set(b, p)
	return p
}

func buildPlan(b *ClassBinding) *classPlan {
	p := &classPlan{
		byName:   make(map[string]int, len(b.Members)),
		tagOf:    make([]int, len(b.Members)),
		taggedBy: make([]int, len(b.Members)),
	}
	for i := range b.Members {
		p.byName[b.Members[i].Name] = i
		p.tagOf[i] = -1
		p.taggedBy[i] = -1
	}
	for i := range b.Members {
		m := &b.Members[i]
		if m.Kind != KindVariantTagged {
			continue
		}
		if tagIdx, ok := p.byName[m.Tag]; ok {
			p.tagOf[i] = tagIdx
			if p.taggedBy[tagIdx] < 0 {
				p.taggedBy[tagIdx] = i
			}
		}
	}
	return p
}
