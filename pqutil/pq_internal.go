package pqutil

import "golang.org/x/exp/constraints"

// pq implements the required interface to be used as a heap data structure using 'container/heap'.
type pq[P constraints.Ordered, T any] struct {
	items []Item[P, T]
	order Order
}

func (p *pq[P, T]) Len() int {
	return len(p.items)
}

func (p *pq[P, T]) Less(i, j int) bool {
	return before(p.order, p.items[i].Priority, p.items[j].Priority)
}

func (p *pq[P, T]) Swap(i, j int) {
	p.items[i], p.items[j] = p.items[j], p.items[i]
}

func (p *pq[P, T]) Push(x any) {
	p.items = append(p.items, x.(Item[P, T]))
}

func (p *pq[P, T]) Pop() any {
	var (
		n = len(p.items)
		x = p.items[n-1]
	)

	// Zero the vacated slot so the payload isn't retained by the backing array
	p.items[n-1] = Item[P, T]{}
	p.items = p.items[:n-1]

	return x
}
