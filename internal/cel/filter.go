package cel

import (
	"github.com/oakwood-commons/dtcols/pkg/column"
	"github.com/oakwood-commons/dtcols/pkg/columns"
)

// Filter keeps the columns of b for which p holds and drops the rest. index
// is the position before filtering. On an evaluation error b is left
// unchanged and the error is returned.
func (p *Predicate) Filter(b *columns.Builder) error {
	snapshot := b.GetColumns()
	keep := make([]bool, len(snapshot))
	for i, c := range snapshot {
		ok, err := p.Match(c, i)
		if err != nil {
			return err
		}
		keep[i] = ok
	}

	i := -1
	b.RemoveFunc(func(*column.Column) bool {
		i++
		return !keep[i]
	})
	return nil
}
