package column

import "sync"

// latentImpl is a one-shot cache around an expensive virtual column. The
// first element read materializes the wrapped representation into flat
// buffers and drops the original; later reads hit the buffers directly.
type latentImpl struct {
	st SType
	n  int

	once sync.Once
	src  impl
	mat  impl
}

// NewLatent wraps a column so that its first read materializes it. Useful
// for virtual columns that are expensive per element and may be read many
// times, but might also never be read at all.
func NewLatent(c Column) Column {
	return newColumn(&latentImpl{st: c.Stype(), n: c.NRows(), src: c.d.ci})
}

func (l *latentImpl) force() impl {
	l.once.Do(func() {
		l.mat = l.src.materializeInto()
		l.src = nil
	})
	return l.mat
}

// forced reports whether the cache has been filled, for tests.
func (l *latentImpl) forced() bool { return l.mat != nil }

func (l *latentImpl) stype() SType { return l.st }
func (l *latentImpl) nrows() int   { return l.n }

func (l *latentImpl) boolAt(i int) (bool, bool)       { return l.force().boolAt(i) }
func (l *latentImpl) intAt(i int) (int64, bool)       { return l.force().intAt(i) }
func (l *latentImpl) floatAt(i int) (float64, bool)   { return l.force().floatAt(i) }
func (l *latentImpl) strAt(i int) (string, bool)      { return l.force().strAt(i) }
func (l *latentImpl) objAt(i int) (interface{}, bool) { return l.force().objAt(i) }

func (l *latentImpl) materialized() bool    { return false }
func (l *latentImpl) materializeInto() impl { return l.force() }

func (l *latentImpl) children() []Column {
	if l.mat != nil {
		return nil
	}
	return l.src.children()
}

func (l *latentImpl) deepCopy() impl {
	if l.mat != nil {
		return l.mat.deepCopy()
	}
	return &latentImpl{st: l.st, n: l.n, src: l.src.deepCopy()}
}
