package search

// frontier is a min-heap on f. Ties go to the deeper record so the search
// commits to one of several equal-cost paths.
type frontier[N comparable] []*record[N]

func (f frontier[N]) Len() int { return len(f) }

func (f frontier[N]) Less(i, j int) bool {
	if f[i].f == f[j].f {
		return f[i].g > f[j].g
	}
	return f[i].f < f[j].f
}

func (f frontier[N]) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}

func (f *frontier[N]) Push(x any) {
	r := x.(*record[N])
	r.index = len(*f)
	*f = append(*f, r)
}

func (f *frontier[N]) Pop() any {
	old := *f
	n := len(old)
	r := old[n-1]
	old[n-1] = nil
	r.index = -1
	*f = old[:n-1]
	return r
}
