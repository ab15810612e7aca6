package metrics

import (
	"cmp"
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultCompletedStatus is the status name that marks a project as closed.
const DefaultCompletedStatus = "Documentation"

// Options tunes the aggregation.
type Options struct {
	// CompletedStatus names the status counted as completed. Matching ignores case.
	CompletedStatus string
	// Locale selects a collation for name ordering. Empty means byte order.
	Locale string
}

// Validate reports whether the options can be used for a computation.
func (o Options) Validate() error {
	_, err := newNameOrder(o.Locale)
	return err
}

func (o Options) completedStatus() string {
	if name := strings.TrimSpace(o.CompletedStatus); name != "" {
		return name
	}
	return DefaultCompletedStatus
}

// nameOrder compares display names. A collator is stateful, so every
// computation builds its own order.
type nameOrder struct {
	coll *collate.Collator
}

func newNameOrder(locale string) (nameOrder, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return nameOrder{}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nameOrder{}, fmt.Errorf("%w %q: %v", ErrInvalidLocale, locale, err)
	}
	return nameOrder{coll: collate.New(tag)}, nil
}

// compare falls back to byte order so the ordering stays total.
func (o nameOrder) compare(a, b string) int {
	if o.coll != nil {
		if c := o.coll.CompareString(a, b); c != 0 {
			return c
		}
	}
	return cmp.Compare(a, b)
}
