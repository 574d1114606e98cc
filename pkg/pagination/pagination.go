package pagination

// DefaultPageSize is used when a paginator is built without an explicit size.
const DefaultPageSize = 6

// Paginator tracks a fixed-size page window over an ordered item list. The
// list itself is not owned here; callers report length changes through
// Resize and slice their list with Bounds or Slice.
type Paginator struct {
	pageSize  int
	itemCount int
	current   int
	seeded    bool
}

// New builds a paginator for the given fixed page size.
func New(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator{pageSize: pageSize}
}

// PageSize returns the fixed page size.
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// Resize records a new item count and re-clamps the current page. The first
// time a non-empty list arrives the paginator lands on the last page, so the
// most recently added items are visible by default.
func (p *Paginator) Resize(itemCount int) {
	if itemCount < 0 {
		itemCount = 0
	}
	p.itemCount = itemCount

	if !p.seeded && itemCount > 0 {
		p.seeded = true
		p.current = p.PageCount() - 1
		return
	}
	p.clamp()
}

// PageCount returns ceil(itemCount / pageSize), minimum 0.
func (p *Paginator) PageCount() int {
	if p.itemCount == 0 {
		return 0
	}
	return (p.itemCount + p.pageSize - 1) / p.pageSize
}

// Current returns the current page index.
func (p *Paginator) Current() int {
	return p.current
}

// SetPage jumps to the requested page, clamped to the valid range.
func (p *Paginator) SetPage(page int) {
	p.current = page
	p.clamp()
}

// Next advances one page, reporting whether the index moved.
func (p *Paginator) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.current++
	return true
}

// Previous steps back one page, reporting whether the index moved.
func (p *Paginator) Previous() bool {
	if !p.HasPrevious() {
		return false
	}
	p.current--
	return true
}

// HasNext reports whether a later page exists.
func (p *Paginator) HasNext() bool {
	return p.current < p.PageCount()-1
}

// HasPrevious reports whether an earlier page exists.
func (p *Paginator) HasPrevious() bool {
	return p.current > 0
}

// Bounds returns the half-open [start, end) window of the current page.
func (p *Paginator) Bounds() (int, int) {
	start := p.current * p.pageSize
	if start >= p.itemCount {
		return 0, 0
	}
	end := start + p.pageSize
	if end > p.itemCount {
		end = p.itemCount
	}
	return start, end
}

// Slice returns the current page window of items. The paginator is resized
// to the slice first, so the window always matches the supplied list.
func Slice[T any](p *Paginator, items []T) []T {
	p.Resize(len(items))
	start, end := p.Bounds()
	return items[start:end]
}

func (p *Paginator) clamp() {
	max := p.PageCount() - 1
	if max < 0 {
		max = 0
	}
	if p.current > max {
		p.current = max
	}
	if p.current < 0 {
		p.current = 0
	}
}
