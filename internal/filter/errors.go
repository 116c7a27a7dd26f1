package filter

import "github.com/rotisserie/eris"

// ErrNilTable is returned when a filter receives no table at all.
// Fatal: no partial result accompanies it.
var ErrNilTable = eris.New("filter: input table is nil")
