package test

import (
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/quay/scapdb"
)

// CompareDatabases allows for comparing [scapdb.Database] objects produced by
// separate runs: the generation time is ignored and nil and empty
// containers compare equal.
var CompareDatabases = cmp.Options{
	cmpopts.IgnoreFields(scapdb.Metadata{}, "Generated"),
	cmpopts.EquateEmpty(),
}

// CompareTimes treats timestamps as equal if they describe the same instant,
// whatever their location or monotonic reading.
var CompareTimes = cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })

// CmpOptions is a bundle of [cmp.Option] for [scapdb] types.
var CmpOptions = cmp.Options{
	CompareDatabases,
	CompareTimes,
}
